package generation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, s string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &out))
	return out
}

func TestExtractTextShapes(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"full response", `{"full_response":[{"message":{"content":"  Кофейня Зерно  "}}]}`, "Кофейня Зерно"},
		{"choices", `{"result":{"choices":[{"message":{"content":"Hello"}}]}}`, "Hello"},
		{"result text", `{"result":{"text":"plain"}}`, "plain"},
		{"result string", `{"result":"  just text\n"}`, "just text"},
		{"result array", `{"result":["Alpha","Beta",3]}`, "Alpha\nBeta\n3"},
		{"blank full response falls through", `{"full_response":[{"message":{"content":"  "}}],"result":"fallback"}`, "fallback"},
		{"full response wins over result", `{"full_response":[{"message":{"content":"first"}}],"result":"second"}`, "first"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractText(mustJSON(t, tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractTextFailures(t *testing.T) {
	for _, body := range []string{
		`{}`,
		`{"result":"   "}`,
		`{"result":[]}`,
		`{"result":{"foo":"bar"}}`,
		`{"full_response":[]}`,
	} {
		_, err := ExtractText(mustJSON(t, body))
		assert.ErrorIs(t, err, ErrDecodeFailure, body)
	}
}

func TestExtractImageURLDirectFields(t *testing.T) {
	cases := map[string]string{
		`{"output":"https://cdn.example.com/a.png"}`:                   "https://cdn.example.com/a.png",
		`{"result":{"output":"https://cdn.example.com/b.jpg"}}`:        "https://cdn.example.com/b.jpg",
		`{"result":{"images":["https://cdn.example.com/c.webp"]}}`:     "https://cdn.example.com/c.webp",
		`{"images":["https://cdn.example.com/d.jpeg"]}`:                "https://cdn.example.com/d.jpeg",
		`{"image_url":"https://images.gen-api.ru/abc"}`:                "https://images.gen-api.ru/abc",
		`{"url":"https://cdn.example.com/e.png?sig=1"}`:                "https://cdn.example.com/e.png?sig=1",
		`{"output":"not a url","url":"https://cdn.example.com/f.gif"}`: "https://cdn.example.com/f.gif",
	}
	for body, want := range cases {
		got, ok := ExtractImageURL(mustJSON(t, body))
		require.True(t, ok, body)
		assert.Equal(t, want, got, body)
	}
}

func TestExtractImageURLDeepSearch(t *testing.T) {
	raw := mustJSON(t, `{
		"status":"success",
		"result":{"data":[{"meta":{"width":1024}},{"nested":{"src":"https://replicate.delivery/xyz/out"}}]}
	}`)
	got, ok := ExtractImageURL(raw)
	require.True(t, ok)
	assert.Equal(t, "https://replicate.delivery/xyz/out", got)
}

func TestExtractImageURLDepthLimit(t *testing.T) {
	deep := `{"a":{"b":{"c":{"d":{"e":{"f":{"g":{"url":"https://cdn.example.com/deep.png"}}}}}}}}`
	_, ok := ExtractImageURL(mustJSON(t, deep))
	assert.False(t, ok)

	shallow := `{"a":{"b":{"url":"https://cdn.example.com/shallow.png"}}}`
	got, ok := ExtractImageURL(mustJSON(t, shallow))
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/shallow.png", got)
}

func TestExtractImageURLMissing(t *testing.T) {
	_, ok := ExtractImageURL(mustJSON(t, `{"status":"success","result":{"text":"no image here"}}`))
	assert.False(t, ok)
}

func TestIsImageURL(t *testing.T) {
	valid := []string{
		"https://cdn.example.com/logo.PNG",
		"http://cdn.example.com/logo.svg",
		"https://cdn.example.com/logo.webp?token=abc",
		"https://fal.media/files/abc",
		"https://oaidalleapiprodscus.blob.core.windows.net/private/img",
		"https://images.gen-api.ru/files/abc",
	}
	for _, u := range valid {
		assert.True(t, IsImageURL(u), u)
	}
	invalid := []string{
		"",
		"ftp://cdn.example.com/logo.png",
		"/local/logo.png",
		"https://example.com/page.html",
		"data:image/png;base64,AAAA",
		"https://gen-api.ru/pricing.html",
		"https://api.gen-api.ru/api/v1/request/get/42",
		"https://d1.cloudfront.net/asset",
	}
	for _, u := range invalid {
		assert.False(t, IsImageURL(u), u)
	}
}

func TestDecodeByKind(t *testing.T) {
	text, err := Decode(ResultText, mustJSON(t, `{"result":"Bean There"}`))
	require.NoError(t, err)
	assert.Equal(t, Result{Kind: ResultText, Value: "Bean There"}, text)

	img, err := Decode(ResultImageURL, mustJSON(t, `{"output":"https://cdn.example.com/a.png"}`))
	require.NoError(t, err)
	assert.Equal(t, ImageURLResult("https://cdn.example.com/a.png"), img)

	_, err = Decode(ResultImageURL, mustJSON(t, `{"result":"no image"}`))
	assert.ErrorIs(t, err, ErrMissingImageURL)

	_, err = Decode(ResultKind("audio"), mustJSON(t, `{}`))
	assert.ErrorIs(t, err, ErrDecodeFailure)
}

func TestExtractImageURLSkipsProviderEndpoints(t *testing.T) {
	raw := mustJSON(t, `{
		"url":"https://api.gen-api.ru/api/v1/request/get/42",
		"output":{"image":"https://cdn.example.com/a.png"}
	}`)
	got, ok := ExtractImageURL(raw)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example.com/a.png", got)
}
