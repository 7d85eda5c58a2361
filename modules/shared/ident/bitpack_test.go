package ident

import "testing"

// Every code at every character position must survive a pack/unpack cycle,
// including the positions whose six bits straddle a byte boundary.
func TestPackUnpackAllPositions(t *testing.T) {
	layouts := []struct {
		name   string
		offset int
		chars  int
		size   int
	}{
		{"catalog", 0, CatalogMaxLength, CatalogMaxBytes},
		{"actor", actorCaseMapSize, ActorMaxLength, ActorMaxBytes},
	}

	for _, layout := range layouts {
		t.Run(layout.name, func(t *testing.T) {
			for index := 0; index < layout.chars; index++ {
				for code := byte(1); code <= codeUnderscore; code++ {
					buf := make([]byte, layout.size)
					packCode(buf, layout.offset, index, code)
					if got := unpackCode(buf, layout.offset, index); got != code {
						t.Fatalf("index %d code %d: unpacked %d", index, code, got)
					}
				}
			}
		})
	}
}

func TestPackUnpackDenseBuffer(t *testing.T) {
	// Adjacent codes must not bleed into each other.
	buf := make([]byte, CatalogMaxBytes)
	for index := 0; index < CatalogMaxLength; index++ {
		packCode(buf, 0, index, byte(index%codeUnderscore)+1)
	}
	for index := 0; index < CatalogMaxLength; index++ {
		want := byte(index%codeUnderscore) + 1
		if got := unpackCode(buf, 0, index); got != want {
			t.Fatalf("index %d: got %d, want %d", index, got, want)
		}
	}
}

func TestAlphabetRoundTrip(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		code, ok := lowerCode(r)
		if !ok {
			t.Fatalf("lowerCode(%q) rejected", r)
		}
		if got := codeChar(code, false); got != byte(r) {
			t.Fatalf("codeChar(%d) = %q, want %q", code, got, r)
		}
		if got := codeChar(code, true); got != byte(r)-('a'-'A') {
			t.Fatalf("codeChar(%d, upper) = %q", code, got)
		}
	}
	for r := '0'; r <= '9'; r++ {
		code, ok := lowerCode(r)
		if !ok {
			t.Fatalf("lowerCode(%q) rejected", r)
		}
		if got := codeChar(code, false); got != byte(r) {
			t.Fatalf("codeChar(%d) = %q, want %q", code, got, r)
		}
	}
	if code, ok := lowerCode('-'); !ok || code != codeHyphen {
		t.Fatalf("lowerCode('-') = %d, %v", code, ok)
	}
	if got := codeChar(codeUnderscore, false); got != '_' {
		t.Fatalf("codeChar(underscore) = %q", got)
	}
	if _, ok := lowerCode('_'); ok {
		t.Fatal("lowerCode must not accept underscore; it is actor-only")
	}
	if _, ok := lowerCode('!'); ok {
		t.Fatal("lowerCode accepted '!'")
	}
}
