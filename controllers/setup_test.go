package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/routes"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// setupRouter 重建内存存储并装配完整路由
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	repository.InitStores()

	router := gin.New()
	routes.RegisterRoutes(router)
	return router
}

// doRequest 发起一次测试请求
func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// loginAs 登录并返回令牌
func loginAs(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doRequest(router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "qualquer-senha",
	})
	require.Equal(t, http.StatusOK, w.Code, "登录失败: %s", w.Body.String())

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

// decodeBody 解析响应体
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
