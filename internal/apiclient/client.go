// Типизированный JSON-клиент API бюджетных таблиц. Единственная граница
// модели рабочего листа с внешним миром.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client выполняет запросы к REST API. Все методы принимают context и
// возвращают ошибку при любом не-2xx статусе или сетевом сбое.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Headers возвращает подписи колонок; их количество задает длину values.
func (c *Client) Headers(ctx context.Context) ([]string, error) {
	var headers []string
	if err := c.getJSON(ctx, "/api/tables/headers", &headers); err != nil {
		return nil, err
	}
	return headers, nil
}

// Table возвращает вложенную структуру одной бюджетной таблицы.
func (c *Client) Table(ctx context.Context, tableID int64) (*TableData, error) {
	var table TableData
	if err := c.getJSON(ctx, fmt.Sprintf("/api/tables/%d", tableID), &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (c *Client) Divisions(ctx context.Context) ([]Division, error) {
	var divisions []Division
	if err := c.getJSON(ctx, "/api/divisions/", &divisions); err != nil {
		return nil, err
	}
	return divisions, nil
}

func (c *Client) Chapters(ctx context.Context, division string) ([]Chapter, error) {
	var chapters []Chapter
	path := fmt.Sprintf("/api/divisions/%s/chapters", url.PathEscape(division))
	if err := c.getJSON(ctx, path, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}

func (c *Client) Paragraphs(ctx context.Context, chapter string) ([]Paragraph, error) {
	var paragraphs []Paragraph
	path := fmt.Sprintf("/api/chapters/%s/paragraphs", url.PathEscape(chapter))
	if err := c.getJSON(ctx, path, &paragraphs); err != nil {
		return nil, err
	}
	return paragraphs, nil
}

// BatchUpdate отправляет весь набор накопленных изменений одним запросом.
// Тело ответа не разбирается: важен только статус.
func (c *Client) BatchUpdate(ctx context.Context, changes []ChangeRecord) error {
	body, err := json.Marshal(changes)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/tables/batch-update", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("batch-update: unexpected status %d", resp.StatusCode)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
