package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	var out bytes.Buffer
	opts, err := parseFlags([]string{"-headless", "-frames", "60", "-turbo", "-noboot", "game.gb"}, &out)
	assert.NoError(t, err)
	assert.Equal(t, "game.gb", opts.ROMPath)
	assert.True(t, opts.Headless)
	assert.True(t, opts.Turbo)
	assert.True(t, opts.NoBoot)
	assert.Equal(t, 60, opts.Frames)
	assert.Equal(t, 3, opts.Scale)
}

func TestParseFlags_Errors(t *testing.T) {
	var out bytes.Buffer
	_, err := parseFlags(nil, &out)
	assert.True(t, errors.Is(err, errUsage))

	_, err = parseFlags([]string{"game.gb", "-headless"}, &out)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-frames", "-1", "game.gb"}, &out)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-expect", "xyz", "game.gb"}, &out)
	assert.Error(t, err)

	_, err = parseFlags([]string{"-nope", "game.gb"}, &out)
	assert.Error(t, err)
}

func TestParseDigest(t *testing.T) {
	v, err := parseDigest("0xDEADbeef")
	assert.NoError(t, err)
	assert.Equal(t, uint64(0xDEADBEEF), v)
}
