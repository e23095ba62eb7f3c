package lesson

import "testing"

func TestExtractJSON_BareObject(t *testing.T) {
	got, ok := extractJSON(`{"a":1}`)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"a":1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_FencedWithLanguageTag(t *testing.T) {
	got, ok := extractJSON("```json\n{\"a\":1}\n```")
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"a":1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_FencedWithoutLanguageTag(t *testing.T) {
	got, ok := extractJSON("```\n{\"a\":1}\n```")
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"a":1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_ProseAroundObject(t *testing.T) {
	got, ok := extractJSON("Here you go:\n```json\n{\"a\":1}\n```\nEnjoy!")
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"a":1}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}

func TestExtractJSON_NoObject(t *testing.T) {
	for _, text := range []string{
		"Sorry, I can't help with that.",
		"",
		"}{",
		"only an open brace? no... only a close }",
	} {
		if _, ok := extractJSON(text); ok {
			t.Errorf("expected failure for %q", text)
		}
	}
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	got, ok := extractJSON(`prefix {"outer":{"inner":2}} suffix`)
	if !ok {
		t.Fatal("expected extraction to succeed")
	}
	if got != `{"outer":{"inner":2}}` {
		t.Fatalf("unexpected extraction: %q", got)
	}
}
