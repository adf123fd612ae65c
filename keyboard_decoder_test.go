package main

import (
	"context"
	"errors"
	"testing"
	"time"
)

func decodeAll(t *testing.T, d *Decoder, bytes ...byte) []DecodedKey {
	t.Helper()
	var keys []DecodedKey
	for _, b := range bytes {
		ev, ok, err := d.AddByte(b)
		if err != nil {
			t.Fatalf("byte 0x%02X: %v", b, err)
		}
		if !ok {
			continue
		}
		if k, ok := d.Process(ev); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

func expectChars(t *testing.T, keys []DecodedKey, want string) {
	t.Helper()
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys for %q, got %v", len(want), want, keys)
	}
	for i, k := range keys {
		if k.Kind != KeyUnicode || k.Char != want[i] {
			t.Fatalf("key %d: expected %q, got %v", i, want[i], k)
		}
	}
}

func TestDecoder_Letter(t *testing.T) {
	expectChars(t, decodeAll(t, NewDecoder(), 0x1E, 0x9E), "a")
}

func TestDecoder_ShiftAndCapsLock(t *testing.T) {
	d := NewDecoder()
	expectChars(t, decodeAll(t, d, 0x2A, 0x1E, 0x9E, 0x02, 0x82, 0xAA), "A!")

	// Caps lock toggles letters only; shift inverts it again.
	keys := decodeAll(t, d, 0x3A, 0xBA, 0x1E, 0x9E, 0x02, 0x82, 0x36, 0x1E, 0x9E, 0xB6)
	expectChars(t, keys, "A1a")
}

func TestDecoder_ControlIsIgnored(t *testing.T) {
	expectChars(t, decodeAll(t, NewDecoder(), 0x1D, 0x2E, 0xAE, 0x9D), "c")
}

func TestDecoder_ControlCharacters(t *testing.T) {
	keys := decodeAll(t, NewDecoder(), 0x1C, 0x9C, 0x0E, 0x8E, 0x0F, 0x8F, 0x01, 0x81, 0xE0, 0x53, 0xE0, 0xD3)
	expectChars(t, keys, "\n\b\t\x1b\x7f")
}

func TestDecoder_ExtendedRawKeys(t *testing.T) {
	keys := decodeAll(t, NewDecoder(), 0xE0, 0x48, 0xE0, 0xC8, 0xE0, 0x4B, 0xE0, 0xCB, 0x3B, 0xBB)
	want := []KeyCode{KeyArrowUp, KeyArrowLeft, KeyF1}
	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %v", len(want), keys)
	}
	for i, k := range keys {
		if k.Kind != KeyRaw || k.Code != want[i] {
			t.Fatalf("key %d: expected raw %v, got %v", i, want[i], k)
		}
	}
}

func TestDecoder_FakeShiftIsSkipped(t *testing.T) {
	keys := decodeAll(t, NewDecoder(), 0xE0, 0x2A, 0xE0, 0x37, 0xE0, 0xB7, 0xE0, 0xAA, 0x1E)
	if len(keys) != 2 || keys[0].Code != KeyPrintScreen || keys[1].Char != 'a' {
		t.Fatalf("expected PrintScreen then lowercase a, got %v", keys)
	}
}

func TestDecoder_Pause(t *testing.T) {
	keys := decodeAll(t, NewDecoder(), pauseSequence...)
	if len(keys) != 1 || keys[0].Kind != KeyRaw || keys[0].Code != KeyPause {
		t.Fatalf("expected one Pause key, got %v", keys)
	}
}

func TestDecoder_Numpad(t *testing.T) {
	d := NewDecoder()
	expectChars(t, decodeAll(t, d, 0x47, 0xC7, 0x53, 0xD3, 0x4E, 0xCE), "7.+")
	keys := decodeAll(t, d, 0x45, 0xC5, 0x47, 0xC7)
	if len(keys) != 1 || keys[0].Kind != KeyRaw || keys[0].Code != KeyHome {
		t.Fatalf("expected Home with num lock off, got %v", keys)
	}
}

func TestDecoder_ErrorsResetState(t *testing.T) {
	d := NewDecoder()
	if _, _, err := d.AddByte(0x00); !errors.Is(err, ErrUnknownKeyCode) {
		t.Fatalf("expected unknown key code, got %v", err)
	}
	d.AddByte(scancodePause)
	if _, _, err := d.AddByte(0x30); !errors.Is(err, ErrInvalidSequence) {
		t.Fatalf("expected invalid sequence, got %v", err)
	}
	expectChars(t, decodeAll(t, d, 0x30, 0xB0), "b")
}

func TestEncodeChar_RoundTrip(t *testing.T) {
	chars := []byte{'\n', '\t', 0x08, 0x1B, 0x7F}
	for c := byte(0x20); c <= 0x7E; c++ {
		chars = append(chars, c)
	}
	for _, c := range chars {
		seq := EncodeChar(c)
		if seq == nil {
			t.Fatalf("no encoding for %q", c)
		}
		expectChars(t, decodeAll(t, NewDecoder(), seq...), string([]byte{c}))
	}
	if EncodeChar(0x01) != nil {
		t.Fatal("expected nil for untypeable byte")
	}
}

func TestEncodeKey(t *testing.T) {
	if got := EncodeKey(KeyA); string(got) != "\x1e\x9e" {
		t.Fatalf("unexpected A encoding % X", got)
	}
	if got := EncodeKey(KeyArrowDown); string(got) != "\xe0\x50\xe0\xd0" {
		t.Fatalf("unexpected ArrowDown encoding % X", got)
	}
	if got := EncodeString("Hi"); string(got) != "\x2a\x23\xa3\xaa\x17\x97" {
		t.Fatalf("unexpected Hi encoding % X", got)
	}
	if EncodeKey(KeyNone) != nil {
		t.Fatal("expected nil for KeyNone")
	}
}

func TestKeyDecoder_SkipsBadSequences(t *testing.T) {
	p := NewScancodePipeline()
	kd := NewKeyDecoder(p.Stream())
	for _, b := range []byte{0x00, 0x23, 0xA3, 0xE1, 0x30, 0x17, 0x97} {
		p.AddScancode(b)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	var got []byte
	for range 2 {
		k, err := kd.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, k.Char)
	}
	if string(got) != "hi" {
		t.Fatalf("expected hi, got %q", got)
	}
	if kd.Errors() != 2 {
		t.Fatalf("expected 2 discarded sequences, got %d", kd.Errors())
	}
}
