package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedLeads 预置两条线索: 一条巴西、一条西班牙
func seedLeads() {
	repository.Leads.Load([]models.Lead{
		{
			ID:          "lead-br",
			FullName:    "Mariana Costa",
			Email:       "mariana@exemplo.com",
			PhoneNumber: "+5511988887777",
			Country:     "Brazil",
			Status:      models.LeadStatusNEW,
			CreatedAt:   time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			ID:          "lead-es",
			FullName:    "Carlos Garcia",
			Email:       "carlos@ejemplo.es",
			PhoneNumber: "+34600111222",
			Country:     "Spain",
			Status:      models.LeadStatusWON,
			CreatedAt:   time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC),
		},
	})
}

func leadList(t *testing.T, body map[string]interface{}) []interface{} {
	t.Helper()
	data := body["data"].(map[string]interface{})
	return data["leads"].([]interface{})
}

func TestLeadListRequiresAuth(t *testing.T) {
	router := setupRouter(t)

	w := doRequest(router, http.MethodGet, "/api/leads/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminSeesAllLeads(t *testing.T) {
	router := setupRouter(t)
	seedLeads()
	token := loginAs(t, router, "admin@calculisto.com")

	w := doRequest(router, http.MethodGet, "/api/leads/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Len(t, leadList(t, body), 2)
}

func TestSalesSeesOnlyAssignedRegions(t *testing.T) {
	router := setupRouter(t)
	seedLeads()
	// sales1负责Brazil和Portugal
	token := loginAs(t, router, "sales1@calculisto.com")

	w := doRequest(router, http.MethodGet, "/api/leads/", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	leads := leadList(t, body)
	require.Len(t, leads, 1)

	lead := leads[0].(map[string]interface{})
	assert.Equal(t, "lead-br", lead["id"])
	assert.Equal(t, "Brazil", lead["country"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
}

func TestLeadDetailOutOfRegionIsNotFound(t *testing.T) {
	router := setupRouter(t)
	seedLeads()
	token := loginAs(t, router, "sales1@calculisto.com")

	// 越权线索与不存在的线索表现一致
	w := doRequest(router, http.MethodGet, "/api/leads/lead-es", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", decodeBody(t, w)["code"])

	w = doRequest(router, http.MethodGet, "/api/leads/nao-existe", token, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "RESOURCE_NOT_FOUND", decodeBody(t, w)["code"])
}

func TestCreateLeadThenSearchFindsIt(t *testing.T) {
	router := setupRouter(t)
	token := loginAs(t, router, "admin@calculisto.com")

	w := doRequest(router, http.MethodPost, "/api/leads/", token, gin.H{
		"fullName":    "Joana Prado",
		"email":       "joana.prado@exemplo.com",
		"phoneNumber": "+5521977776666",
		"country":     "Brazil",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeBody(t, w)["data"].(map[string]interface{})
	assert.NotEmpty(t, created["id"])
	assert.Equal(t, "new", created["status"], "新线索默认处于new阶段")
	assert.Equal(t, "manual", created["source"])

	// 按邮箱检索应命中刚创建的线索
	w = doRequest(router, http.MethodGet, "/api/leads/?search=JOANA.PRADO%40exemplo.com", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	leads := leadList(t, decodeBody(t, w))
	require.Len(t, leads, 1)
	assert.Equal(t, created["id"], leads[0].(map[string]interface{})["id"])
}

func TestCreateLeadValidation(t *testing.T) {
	router := setupRouter(t)
	token := loginAs(t, router, "admin@calculisto.com")

	w := doRequest(router, http.MethodPost, "/api/leads/", token, gin.H{
		"fullName": "Sem Contato",
		"email":    "nao-e-email",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateLeadStatusRefreshesLastContact(t *testing.T) {
	router := setupRouter(t)
	seedLeads()
	token := loginAs(t, router, "sales1@calculisto.com")

	w := doRequest(router, http.MethodPut, "/api/leads/lead-br/status", token, gin.H{
		"status": "booked",
	})
	require.Equal(t, http.StatusOK, w.Code)

	lead := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "booked", lead["status"])
	assert.NotEmpty(t, lead["lastContactedAt"], "阶段变化应刷新最近联系时间")
}

func TestAssignLead(t *testing.T) {
	router := setupRouter(t)
	seedLeads()
	token := loginAs(t, router, "admin@calculisto.com")

	w := doRequest(router, http.MethodPut, "/api/leads/lead-es/assign", token, gin.H{
		"userId": "3",
	})
	require.Equal(t, http.StatusOK, w.Code)

	lead := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "3", lead["assignedTo"])
}

func TestUpdateLeadMergesFields(t *testing.T) {
	router := setupRouter(t)
	seedLeads()
	token := loginAs(t, router, "admin@calculisto.com")

	w := doRequest(router, http.MethodPut, "/api/leads/lead-br", token, gin.H{
		"notes": "Prefere contato à tarde",
	})
	require.Equal(t, http.StatusOK, w.Code)

	lead := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Prefere contato à tarde", lead["notes"])
	// 未提交的字段保持不变
	assert.Equal(t, "Mariana Costa", lead["fullName"])
}

func TestBulkImportSkipsInvalidRows(t *testing.T) {
	router := setupRouter(t)
	token := loginAs(t, router, "admin@calculisto.com")

	w := doRequest(router, http.MethodPost, "/api/leads/bulk-import", token, gin.H{
		"leads": []gin.H{
			{"fullName": "Ok Um", "email": "ok1@exemplo.com", "phoneNumber": "1", "country": "Brazil"},
			{"fullName": "Sem Email", "phoneNumber": "2", "country": "Brazil"},
			{"fullName": "Email Ruim", "email": "invalido", "phoneNumber": "3", "country": "Spain"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["imported"])
	assert.Equal(t, float64(2), data["skipped"])

	// 导入来源强制标记为meta
	leads := repository.Leads.All()
	require.Len(t, leads, 1)
	assert.Equal(t, models.LeadSourceMETA, leads[0].Source)
}

func TestKanbanScopedByRegion(t *testing.T) {
	router := setupRouter(t)
	seedLeads()
	token := loginAs(t, router, "sales1@calculisto.com")

	w := doRequest(router, http.MethodGet, "/api/leads/kanban", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	columns := data["columns"].([]interface{})
	require.Len(t, columns, 6, "默认6个阶段各占一列")

	byStage := map[string]map[string]interface{}{}
	for _, raw := range columns {
		col := raw.(map[string]interface{})
		stage := col["stage"].(map[string]interface{})
		byStage[stage["key"].(string)] = col
	}

	assert.Equal(t, float64(1), byStage["new"]["total"])
	// 西班牙的won线索对sales1不可见
	assert.Equal(t, float64(0), byStage["won"]["total"])
}

func TestUserListAdminOnly(t *testing.T) {
	router := setupRouter(t)
	adminToken := loginAs(t, router, "admin@calculisto.com")
	salesToken := loginAs(t, router, "sales2@calculisto.com")

	w := doRequest(router, http.MethodGet, "/api/users/", salesToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	forbidden := decodeBody(t, w)
	assert.Equal(t, "FORBIDDEN", forbidden["code"])
	assert.Equal(t, "权限不足", forbidden["error"])

	w = doRequest(router, http.MethodGet, "/api/users/", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeBody(t, w)["data"].(map[string]interface{})
	users := data["users"].([]interface{})
	require.Len(t, users, 3)
	for _, raw := range users {
		user := raw.(map[string]interface{})
		assert.Nil(t, user["password"], "用户列表不应包含密码")
	}
}
