package filesink

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestWithEncoding_Latin1(t *testing.T) {
	name := filepath.Join(t.TempDir(), "latin1.log")
	s, err := NewExclusive(name, lineFormatter{}, WithEncoding(charmap.ISO8859_1))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.Append(msgEntry("café")); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{'c', 'a', 'f', 0xE9, '\n'}
	if !bytes.Equal(data, want) {
		t.Errorf("file = % x, want % x", data, want)
	}
}

func TestWithEncoding_UTF16CountsEncodedBytes(t *testing.T) {
	name := filepath.Join(t.TempDir(), "utf16.log")
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

	// "ab\n" is 3 bytes in UTF-8 but 6 on the wire; the size check must
	// see the encoded length.
	s, err := NewExclusive(name, lineFormatter{},
		WithEncoding(enc), WithSizeLimit(6))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	ok, err := s.Append(msgEntry("ab"))
	if err != nil || !ok {
		t.Fatalf("first append: ok=%v err=%v", ok, err)
	}
	ok, err = s.Append(msgEntry("cd"))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("second append accepted past the limit")
	}

	if err := s.Sync(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(name)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 6 {
		t.Errorf("file size = %d, want 6", info.Size())
	}
}
