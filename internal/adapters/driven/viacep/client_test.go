package viacep

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mercado-labs/mercado-core/internal/core/domain"
)

func TestClient_Resolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/01310100/json/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"cep": "01310-100",
			"logradouro": "Avenida Paulista",
			"bairro": "Bela Vista",
			"localidade": "São Paulo",
			"uf": "SP"
		}`))
	}))
	defer srv.Close()

	addr, err := NewClient(srv.URL).Resolve(context.Background(), "01310100")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr.Street != "Avenida Paulista" || addr.City != "São Paulo" || addr.State != "SP" {
		t.Errorf("unexpected address: %+v", addr)
	}
	if addr.CEP != "01310100" {
		t.Errorf("expected the normalized CEP to be kept, got %q", addr.CEP)
	}
}

func TestClient_ResolveUnknownCEP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Resolve(context.Background(), "99999999")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestClient_ResolveUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Resolve(context.Background(), "01310100")
	if !errors.Is(err, domain.ErrUpstream) {
		t.Errorf("expected ErrUpstream, got %v", err)
	}
}
