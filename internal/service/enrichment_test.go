package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/citywatch/complaints-backend/internal/models"
)

// pngHeader — сигнатура PNG файла, по ней filetype распознаёт картинку.
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D}

func strPtr(s string) *string { return &s }

func complaintWithURL(url string) models.Complaint {
	return models.Complaint{Username: "alice", URL: strPtr(url)}
}

func TestEnricher_ExtractsTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Broken streetlight</title></head><body></body></html>`))
	}))
	defer srv.Close()

	enricher := NewEnricher(srv.Client(), "http://placeholder.local/img.png")
	enriched := enricher.EnrichAll(context.Background(), []models.Complaint{complaintWithURL(srv.URL)})

	assert.Len(t, enriched, 1)
	assert.Equal(t, "Broken streetlight", enriched[0].ImageName)
	assert.Equal(t, srv.URL, enriched[0].ImageURL)
}

func TestEnricher_FallbackWhenNoTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>no title here</body></html>`))
	}))
	defer srv.Close()

	enricher := NewEnricher(srv.Client(), "http://placeholder.local/img.png")
	enriched := enricher.EnrichAll(context.Background(), []models.Complaint{complaintWithURL(srv.URL)})

	assert.Equal(t, FallbackImageName, enriched[0].ImageName)
}

func TestEnricher_FallbackForImageBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(pngHeader)
	}))
	defer srv.Close()

	enricher := NewEnricher(srv.Client(), "http://placeholder.local/img.png")
	enriched := enricher.EnrichAll(context.Background(), []models.Complaint{complaintWithURL(srv.URL)})

	assert.Equal(t, FallbackImageName, enriched[0].ImageName)
}

func TestEnricher_FallbackWhenFetchFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close() // соединение будет отклонено

	enricher := NewEnricher(&http.Client{}, "http://placeholder.local/img.png")
	enriched := enricher.EnrichAll(context.Background(), []models.Complaint{complaintWithURL(url)})

	assert.Equal(t, FallbackImageName, enriched[0].ImageName)
}

func TestEnricher_PlaceholderForMissingURL(t *testing.T) {
	placeholder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<title>Placeholder</title>`))
	}))
	defer placeholder.Close()

	enricher := NewEnricher(placeholder.Client(), placeholder.URL)
	enriched := enricher.EnrichAll(context.Background(), []models.Complaint{
		{Username: "alice"},
		{Username: "alice", URL: strPtr("")},
	})

	for _, item := range enriched {
		assert.Equal(t, placeholder.URL, item.ImageURL)
		assert.Equal(t, "Placeholder", item.ImageName)
	}
}

// Неудача одного элемента не роняет пакет: соседний элемент всё равно
// получает свой заголовок.
func TestEnricher_PartialFailureIsolation(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<title>Good</title>`))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	badURL := bad.URL
	bad.Close()

	enricher := NewEnricher(&http.Client{}, "http://placeholder.local/img.png")
	enriched := enricher.EnrichAll(context.Background(), []models.Complaint{
		complaintWithURL(good.URL),
		complaintWithURL(badURL),
		complaintWithURL(good.URL),
	})

	assert.Equal(t, "Good", enriched[0].ImageName)
	assert.Equal(t, FallbackImageName, enriched[1].ImageName)
	assert.Equal(t, "Good", enriched[2].ImageName)

	// Подпись никогда не бывает пустой.
	for _, item := range enriched {
		assert.NotEmpty(t, item.ImageName)
	}
}
