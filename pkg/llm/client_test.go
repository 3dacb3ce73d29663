package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleBody = "Центральный банк России на заседании в пятницу принял решение повысить ключевую ставку. " +
	"Регулятор объяснил решение ускорением инфляции и ростом кредитования. " +
	"Аналитики ожидают, что ставка останется высокой до конца года, а рубль продолжит укрепляться."

// chatServer returns a test server answering chat completions with the given content
func chatServer(t *testing.T, content string, check func(req openai.ChatCompletionRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if check != nil {
			check(req)
		}

		resp := openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: content}}},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(endpoint string) *Client {
	return NewClient(Config{
		Enabled:     true,
		Endpoint:    endpoint + "/v1",
		APIKey:      "test-key",
		Model:       "test-model",
		Timeout:     time.Second,
		Temperature: 0.3,
	})
}

func TestClient_Categorize(t *testing.T) {
	server := chatServer(t, "Спорт", func(req openai.ChatCompletionRequest) {
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, classifyMaxTokens, req.MaxTokens)
		assert.InDelta(t, 0.3, req.Temperature, 0.001)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
		assert.Equal(t, systemPrompt, req.Messages[0].Content)
		assert.Equal(t, openai.ChatMessageRoleUser, req.Messages[1].Role)
		assert.Contains(t, req.Messages[1].Content, "Матч года. "+strings.Repeat("ы", classifyInputLen)+"\n")
		assert.NotContains(t, req.Messages[1].Content, strings.Repeat("ы", classifyInputLen+1))
	})
	defer server.Close()

	c := testClient(server.URL)
	assert.Equal(t, CategorySports, c.Categorize(context.Background(), "Матч года", strings.Repeat("ы", 700)))
}

func TestClient_CategorizeResponses(t *testing.T) {
	tests := []struct {
		resp string
		want string
	}{
		{resp: "Категория: Наука", want: CategoryScience},
		{resp: "экономика.", want: CategoryEconomy},
		{resp: "Техн", want: CategoryTechnology},
		{resp: "«Культ»", want: CategoryCulture},
		{resp: "Sports", want: CategorySociety},
		{resp: "???", want: CategorySociety},
	}
	for _, tt := range tests {
		t.Run(tt.resp, func(t *testing.T) {
			server := chatServer(t, tt.resp, nil)
			defer server.Close()
			assert.Equal(t, tt.want, testClient(server.URL).Categorize(context.Background(), "заголовок", "текст"))
		})
	}
}

func TestClient_CategorizeFallback(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()
		assert.Equal(t, CategoryEconomy, testClient(server.URL).Categorize(context.Background(), "Курс доллара вырос", "Банк изменил ставку"))
	})

	t.Run("malformed response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": "oops"`))
		}))
		defer server.Close()
		assert.Equal(t, CategoryEconomy, testClient(server.URL).Categorize(context.Background(), "Курс доллара вырос", ""))
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices": []}`))
		}))
		defer server.Close()
		assert.Equal(t, CategorySociety, testClient(server.URL).Categorize(context.Background(), "обычная новость", "что-то произошло"))
	})

	t.Run("timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer server.Close()
		c := NewClient(Config{Enabled: true, Endpoint: server.URL + "/v1", Timeout: 50 * time.Millisecond})
		assert.Equal(t, CategorySports, c.Categorize(context.Background(), "Футбол", ""))
	})

	t.Run("unreachable", func(t *testing.T) {
		c := NewClient(Config{Enabled: true, Endpoint: "http://127.0.0.1:1/v1", Timeout: time.Second})
		assert.Equal(t, CategoryHealth, c.Categorize(context.Background(), "Врачи предупредили", ""))
	})
}

func TestClient_Summarize(t *testing.T) {
	want := "Центробанк повысил ключевую ставку из-за ускорения инфляции и роста кредитования."
	server := chatServer(t, "Сводка: «"+want+"»", func(req openai.ChatCompletionRequest) {
		assert.Equal(t, summaryMaxTokens, req.MaxTokens)
		assert.Contains(t, req.Messages[1].Content, articleBody)
	})
	defer server.Close()

	assert.Equal(t, want, testClient(server.URL).Summarize(context.Background(), articleBody))
}

func TestClient_SummarizeLongResponseShortened(t *testing.T) {
	resp := strings.Repeat("Ставка выросла до рекордного уровня за последние годы. ", 6)
	server := chatServer(t, resp, nil)
	defer server.Close()

	res := testClient(server.URL).Summarize(context.Background(), articleBody)
	assert.Equal(t, "Ставка выросла до рекордного уровня за последние годы. Ставка выросла до рекордного уровня за последние годы.", res)
}

func TestClient_SummarizeQualityGate(t *testing.T) {
	fallback := Fallback{}.Summarize(context.Background(), articleBody)
	require.NotEqual(t, articleBody, fallback)

	tests := []struct {
		name string
		resp string
	}{
		{name: "too short", resp: "Ставка выросла."},
		{name: "echo of the article", resp: string([]rune(articleBody)[:120])},
		{name: "no sentence end", resp: "Центробанк повысил ключевую ставку из-за ускорения инфляции и роста кредитования"},
		{name: "code fence", resp: "```\nЦентробанк повысил ключевую ставку из-за ускорения инфляции.\n```"},
		{name: "markdown heading", resp: "### Итог\nЦентробанк повысил ключевую ставку из-за ускорения инфляции."},
		{name: "empty", resp: "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := chatServer(t, tt.resp, nil)
			defer server.Close()
			assert.Equal(t, fallback, testClient(server.URL).Summarize(context.Background(), articleBody))
		})
	}
}

func TestClient_IsConfigured(t *testing.T) {
	assert.True(t, NewClient(Config{Enabled: true, Endpoint: "http://localhost:1234/v1"}).IsConfigured())
	assert.False(t, NewClient(Config{Enabled: false, Endpoint: "http://localhost:1234/v1"}).IsConfigured())
	assert.False(t, NewClient(Config{Enabled: true}).IsConfigured())
}

func TestClient_IsAvailable(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "/v1/models", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object":"list","data":[{"id":"model-a","object":"model"},{"id":"model-b","object":"model"}]}`))
	}))
	defer server.Close()

	c := testClient(server.URL)
	assert.True(t, c.IsAvailable(context.Background()))
	assert.Equal(t, []string{"model-a", "model-b"}, c.AvailableModels(context.Background()))

	disabled := NewClient(Config{Endpoint: server.URL + "/v1"})
	assert.False(t, disabled.IsAvailable(context.Background()))
	assert.Empty(t, disabled.AvailableModels(context.Background()))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls), "disabled client never calls the backend")

	down := NewClient(Config{Enabled: true, Endpoint: "http://127.0.0.1:1/v1", ProbeTimeout: 100 * time.Millisecond})
	assert.False(t, down.IsAvailable(context.Background()))
	assert.Empty(t, down.AvailableModels(context.Background()))
}

func TestCleanSummary(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Сводка: Цены выросли.", "Цены выросли."},
		{"Краткая сводка:   Цены выросли.", "Цены выросли."},
		{"summary: Prices rose.", "Prices rose."},
		{"В статье говорится о том, что цены выросли.", "цены выросли."},
		{"Статья рассказывает, что цены выросли.", "Статья рассказывает, что цены выросли."},
		{"В материале что цены выросли.", "цены выросли."},
		{"The article reports that prices rose.", "prices rose."},
		{"«Цены выросли.»", "Цены выросли."},
		{`"Цены выросли."`, "Цены выросли."},
		{"  Цены выросли.  ", "Цены выросли."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanSummary(tt.in))
		})
	}
}
