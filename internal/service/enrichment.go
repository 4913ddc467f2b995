package service

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"runtime/debug"
	"sync"

	"github.com/h2non/filetype"

	"github.com/citywatch/complaints-backend/internal/logger"
	"github.com/citywatch/complaints-backend/internal/models"
)

// FallbackImageName — подпись, подставляемая при любой неудаче
// обогащения: ошибка запроса, страница без заголовка, бинарный ответ.
const FallbackImageName = "Image"

// titleRe — первое вхождение пары тегов <title>. Нарочно примитивная
// выборка, а не полноценный HTML парсер: достаточно первой пары тегов.
var titleRe = regexp.MustCompile(`(?s)<title>(.*?)</title>`)

// Enricher дополняет жалобы подписью изображения, извлечённой из
// заголовка страницы по url жалобы.
type Enricher struct {
	client         *http.Client
	placeholderURL string
}

// NewEnricher создаёт обогатитель. Клиент без таймаута воспроизводит
// поведение исходного приложения; для ограничения времени передайте
// свой *http.Client.
func NewEnricher(client *http.Client, placeholderURL string) *Enricher {
	if client == nil {
		client = &http.Client{}
	}
	return &Enricher{client: client, placeholderURL: placeholderURL}
}

// EnrichAll обогащает пакет жалоб. Запросы уходят параллельно, по
// одному на жалобу, и ожидаются совместно; неудача одного элемента не
// прерывает ни пакет, ни запрос — элемент деградирует до фолбэка.
func (e *Enricher) EnrichAll(ctx context.Context, complaints []models.Complaint) []models.EnrichedComplaint {
	enriched := make([]models.EnrichedComplaint, len(complaints))

	var wg sync.WaitGroup
	for i := range complaints {
		enriched[i].Complaint = complaints[i]

		imageURL := e.placeholderURL
		if complaints[i].URL != nil && *complaints[i].URL != "" {
			imageURL = *complaints[i].URL
		}
		enriched[i].ImageURL = imageURL

		wg.Add(1)
		go func(item *models.EnrichedComplaint) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					if logger.Log != nil {
						logger.Log.WithFields(map[string]interface{}{
							"panic": r,
							"stack": string(debug.Stack()),
						}).Error("enricher: panic в горутине обогащения")
					}
					item.ImageName = FallbackImageName
				}
			}()
			item.ImageName = e.fetchTitle(ctx, item.ImageURL)
		}(&enriched[i])
	}
	wg.Wait()

	return enriched
}

// fetchTitle забирает страницу и возвращает содержимое первого тега
// <title>, либо фолбэк. Без повторов и без собственного таймаута.
func (e *Enricher) fetchTitle(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FallbackImageName
	}

	resp, err := e.client.Do(req)
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithFields(map[string]interface{}{
				"url":   url,
				"error": err.Error(),
			}).Debug("enricher: ошибка запроса изображения")
		}
		return FallbackImageName
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return FallbackImageName
	}

	// Если по url лежит сам файл изображения, заголовка у него нет.
	if filetype.IsImage(body) {
		return FallbackImageName
	}

	match := titleRe.FindSubmatch(body)
	if match == nil || len(match[1]) == 0 {
		return FallbackImageName
	}

	return string(match[1])
}
