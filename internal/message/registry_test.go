package message

import (
	"strings"
	"testing"
)

func TestFormatSubstitutesArgs(t *testing.T) {
	got := Default().Format("UNDEFINED_NAME", "en", Args{"name": "x"})
	if got != "name 'x' is not defined" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormatLocalized(t *testing.T) {
	got := Default().Format("UNDEFINED_NAME", "fr", Args{"name": "compteur"})
	if got != "le nom 'compteur' n'est pas défini" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormatFallsBackToEnglish(t *testing.T) {
	// UNTERMINATED_DATE has no Tamil template.
	got := Default().Format("UNTERMINATED_DATE", "ta", nil)
	if got != "unterminated date literal" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormatUnknownKeyRendersKey(t *testing.T) {
	if got := Default().Format("NO_SUCH_KEY", "en", nil); got != "NO_SUCH_KEY" {
		t.Errorf("Format = %q", got)
	}
}

func TestControlFlowKeysCoverAllLanguages(t *testing.T) {
	langs := []string{"en", "fr", "es", "de", "it", "pt", "hi", "bn", "ta", "ar", "zh", "ja"}
	for _, key := range []string{"BREAK_OUTSIDE_LOOP", "CONTINUE_OUTSIDE_LOOP", "RETURN_OUTSIDE_FUNCTION"} {
		en := Default().Format(key, "en", nil)
		for _, lang := range langs[1:] {
			if got := Default().Format(key, lang, nil); got == en {
				t.Errorf("%s has no %s translation", key, lang)
			}
		}
	}
}

func TestLoadRequiresEnglishTemplate(t *testing.T) {
	_, err := Load([]byte("messages:\n  ONLY_FRENCH:\n    fr: bonjour\n"))
	if err == nil || !strings.Contains(err.Error(), "ONLY_FRENCH") {
		t.Errorf("Load = %v, want missing-fallback error", err)
	}
}
