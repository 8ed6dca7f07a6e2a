package feature

import (
	"testing"

	"github.com/nao1215/urlfeature/internal/model"
)

func TestExplain(t *testing.T) {
	t.Parallel()

	ext := NewExtractor()

	t.Run("vector matches Extract", func(t *testing.T) {
		t.Parallel()

		raw := "https://mail.google.com/mail/u/0/?tab=rm"
		ex := ext.Explain(raw)
		if ex.Vector != ext.Extract(raw) {
			t.Error("Explain vector differs from Extract")
		}
		if ex.Parts != model.Decompose(raw) {
			t.Error("Explain parts differ from Decompose")
		}
	})

	t.Run("registrable domain of benign sub-domain", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("https://mail.google.com/")
		if ex.Hostname != "mail.google.com" {
			t.Errorf("Hostname = %q", ex.Hostname)
		}
		if ex.RegistrableDomain != "google.com" {
			t.Errorf("RegistrableDomain = %q, want google.com", ex.RegistrableDomain)
		}
		if !ex.RegistrableBenign {
			t.Error("expected registrable domain to be benign")
		}
		if ex.Vector.Get(model.DomainTop) != 0 {
			t.Error("domain_top must stay an exact host match")
		}
		if ex.PublicSuffix != "com" || !ex.ICANN {
			t.Errorf("PublicSuffix = %q (icann=%v), want com (icann=true)", ex.PublicSuffix, ex.ICANN)
		}
	})

	t.Run("multi-label public suffix", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("http://login.example.co.uk:8443/x")
		if ex.Hostname != "login.example.co.uk" {
			t.Errorf("Hostname = %q", ex.Hostname)
		}
		if ex.PublicSuffix != "co.uk" {
			t.Errorf("PublicSuffix = %q, want co.uk", ex.PublicSuffix)
		}
		if ex.RegistrableDomain != "example.co.uk" {
			t.Errorf("RegistrableDomain = %q, want example.co.uk", ex.RegistrableDomain)
		}
	})

	t.Run("punycode host", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("http://xn--bcher-kva.example/")
		if !ex.Punycode {
			t.Error("expected punycode label to be detected")
		}
		if ex.UnicodeHost != "bücher.example" {
			t.Errorf("UnicodeHost = %q, want bücher.example", ex.UnicodeHost)
		}
	})

	t.Run("IP host has no domain diagnostics", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("http://192.168.1.1/ADMIN/x?y=1&z=2")
		if ex.Hostname != "192.168.1.1" {
			t.Errorf("Hostname = %q", ex.Hostname)
		}
		if ex.RegistrableDomain != "" || ex.PublicSuffix != "" {
			t.Error("expected no public suffix data for an IP host")
		}
	})

	t.Run("lenient host", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("http://user@Secure-Login.top:80abc/login%zz")
		if ex.Hostname != "secure-login.top" {
			t.Errorf("Hostname = %q, want secure-login.top", ex.Hostname)
		}
		if ex.RegistrableDomain != "secure-login.top" {
			t.Errorf("RegistrableDomain = %q", ex.RegistrableDomain)
		}
	})

	t.Run("bracketed IPv6 host", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("http://[::1]:8080/")
		if ex.Hostname != "::1" || ex.RegistrableDomain != "" {
			t.Errorf("unexpected diagnostics: %+v", ex)
		}
	})

	t.Run("no host", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("not a url")
		if ex.Hostname != "" || ex.RegistrableDomain != "" {
			t.Error("expected no host diagnostics")
		}
		if ex.Composition.Letters != 7 || ex.Composition.Other != 2 || ex.Composition.Digits != 0 {
			t.Errorf("unexpected composition: %+v", ex.Composition)
		}
	})

	t.Run("composition", func(t *testing.T) {
		t.Parallel()

		ex := ext.Explain("http://a1.io/")
		want := Composition{Letters: 7, Digits: 1, Other: 5}
		if ex.Composition != want {
			t.Errorf("Composition = %+v, want %+v", ex.Composition, want)
		}
	})
}
