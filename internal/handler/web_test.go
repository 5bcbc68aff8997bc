package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doRequest(newTestRouter(newMemStore()), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAPINoRoute(t *testing.T) {
	w := doRequest(newTestRouter(newMemStore()), http.MethodGet, "/api/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Not Found"}`, w.Body.String())
}

func TestAddCommentForm(t *testing.T) {
	store := newMemStore()
	movie := store.seed("测试电影")
	r := newTestRouter(store)

	t.Run("提交后重定向回详情页", func(t *testing.T) {
		w := doForm(r, "/movie/"+movie.ID.Hex()+"/comments", url.Values{
			"name":  {"A"},
			"email": {"a@x.com"},
			"text":  {"好看"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/movie/"+movie.ID.Hex()+"#comments", w.Header().Get("Location"))
		require.Len(t, store.find(movie.ID).Comments, 1)
		assert.Equal(t, "好看", store.find(movie.ID).Comments[0].Text)
	})

	t.Run("缺字段时不写入", func(t *testing.T) {
		before := len(store.find(movie.ID).Comments)
		w := doForm(r, "/movie/"+movie.ID.Hex()+"/comments", url.Values{
			"name": {"A"},
		})
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, before, len(store.find(movie.ID).Comments))
	})
}

func TestDeleteCommentForm(t *testing.T) {
	store := newMemStore()
	movie := store.seed("测试电影")
	r := newTestRouter(store)

	w := doForm(r, "/movie/"+movie.ID.Hex()+"/comments", url.Values{
		"name":  {"A"},
		"email": {"a@x.com"},
		"text":  {"好看"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	cid := store.find(movie.ID).Comments[0].ID.Hex()

	w = doForm(r, "/movie/"+movie.ID.Hex()+"/comments/"+cid+"/delete", nil)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Empty(t, store.find(movie.ID).Comments)
}
