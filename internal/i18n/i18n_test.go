package i18n

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/amoylab/leavehub/internal/common/cnst"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestI18n(t *testing.T) *I18n {
	t.Helper()
	tmp := t.TempDir()
	en := `[ErrorUserNotFound]
other = "User not found"

[SuccessUserCreated]
other = "User registered successfully"
`
	zh := `[ErrorUserNotFound]
other = "用户不存在"
`
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "en.toml"), []byte(en), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "zh.toml"), []byte(zh), 0644))

	i := NewI18n(language.English)
	require.NoError(t, i.LoadTranslations(tmp))
	return i
}

func TestTranslate(t *testing.T) {
	i := newTestI18n(t)

	assert.Equal(t, "User not found", i.Translate("ErrorUserNotFound", "en", nil))
	assert.Equal(t, "用户不存在", i.Translate("ErrorUserNotFound", "zh", nil))

	// Missing zh message falls back to the default language
	assert.Equal(t, "User registered successfully", i.Translate("SuccessUserCreated", "zh", nil))

	// Unknown message ID is returned verbatim
	assert.Equal(t, "NoSuchMessage", i.Translate("NoSuchMessage", "en", nil))
}

func TestLoadTranslationsMissingDir(t *testing.T) {
	i := NewI18n(language.English)
	assert.Error(t, i.LoadTranslations(filepath.Join(t.TempDir(), "nope")))
}

func TestGetLanguageFromRequest(t *testing.T) {
	tests := []struct {
		name   string
		header http.Header
		want   string
	}{
		{"x-lang", http.Header{cnst.XLang: []string{"zh"}}, "zh"},
		{"x-lang region", http.Header{cnst.XLang: []string{"zh-CN"}}, "zh"},
		{"accept-language", http.Header{"Accept-Language": []string{"zh-CN,zh;q=0.9,en;q=0.8"}}, "zh"},
		{"unsupported", http.Header{cnst.XLang: []string{"fr"}}, "en"},
		{"none", http.Header{}, "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.Header = tt.header
			assert.Equal(t, tt.want, getLanguageFromRequest(r))
		})
	}
}

func TestLangMiddleware(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(cnst.XLang, "zh")

	LangMiddleware()(c)

	lang, ok := c.Get(cnst.XLang)
	require.True(t, ok)
	assert.Equal(t, "zh", lang)
}

func TestErrorWithCode(t *testing.T) {
	err := NewErrorWithCode("ErrorUserNotFound", ErrorNotFound)
	assert.Equal(t, ErrorNotFound, err.GetCode())
	assert.True(t, IsI18nError(err))

	changed := err.WithHttpCode(ErrorConflict)
	assert.Equal(t, ErrorConflict, changed.GetCode())
	// The original is untouched
	assert.Equal(t, ErrorNotFound, err.GetCode())
}

func TestRespondWithErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *ErrorWithCode
		want int
	}{
		{"not found", ErrorUserNotFound, http.StatusNotFound},
		{"unauthorized", ErrorInvalidCredentials, http.StatusUnauthorized},
		{"conflict", ErrorEmailExists, http.StatusConflict},
		{"bad request", ErrorLeaveInvalidRange, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			Error(tt.err).Send(c)
			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), "error")
		})
	}
}

func TestSuccessResponseBuilder(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Success(MsgUserLoggedIn).With("token", "abc123").Send(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "message")
	assert.Contains(t, w.Body.String(), "abc123")
}

func TestCreatedResponseWithPayload(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Created(MsgUserCreated).WithPayload(map[string]any{"id": 1}).Send(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"id":1`)
}
