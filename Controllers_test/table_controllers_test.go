package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hiramaya/reservation-app/controllers"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/hiramaya/reservation-app/models"
	"github.com/hiramaya/reservation-app/utils"
)

const testBranch = "hirama"

func setupTableRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.Default()

	tableCtrl := controllers.NewTableController(db)
	router.POST("/tables", tableCtrl.CreateTable)
	router.GET("/tables", tableCtrl.GetAllTables)
	router.GET("/tables/:table_id", tableCtrl.GetTableByID)
	router.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
	router.DELETE("/tables/:table_id", tableCtrl.DeactivateTable)
	router.POST("/tables/seed", tableCtrl.SeedTables)

	return router
}

func seedTable(t *testing.T, db *gorm.DB, table models.Table) models.Table {
	t.Helper()
	if table.BranchCode == "" {
		table.BranchCode = testBranch
	}
	if table.MinCapacity == 0 {
		table.MinCapacity = 1
	}
	if table.TableType == "" {
		table.TableType = models.TableTypeRegular
	}
	table.IsActive = true
	if err := db.Create(&table).Error; err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
	return table
}

func TestCreateTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableRouter(db)

	w := performJSON(router, "POST", "/tables", map[string]interface{}{
		"table_number": "A1",
		"max_capacity": 4,
		"zone":         "A",
		"has_window":   true,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Table created successfully", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, "A1", data["table_number"])
	assert.Equal(t, float64(4), data["max_capacity"])
	assert.Equal(t, float64(1), data["min_capacity"]) // default
	assert.Equal(t, true, data["is_active"])
}

func TestGetAllTablesHidesInactive(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)

	seedTable(t, db, models.Table{TableNumber: "A1", MaxCapacity: 4})
	inactive := seedTable(t, db, models.Table{TableNumber: "A2", MaxCapacity: 4})
	db.Model(&inactive).Update("is_active", false)

	router := setupTableRouter(db)

	w := performJSON(router, "GET", "/tables", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "List of tables", response["message"])
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)

	// Dengan include_inactive keduanya muncul
	w = performJSON(router, "GET", "/tables?include_inactive=true", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	data = response["data"].([]interface{})
	assert.Len(t, data, 2)
}

func TestUpdateTablePartialFields(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	table := seedTable(t, db, models.Table{TableNumber: "B1", MaxCapacity: 6, Zone: "B"})

	router := setupTableRouter(db)

	w := performJSON(router, "PATCH", fmt.Sprintf("/tables/%d", table.ID), map[string]interface{}{
		"priority": 5,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Table
	db.First(&updated, table.ID)
	assert.Equal(t, 5, updated.Priority)
	// Field lain tidak boleh ikut berubah
	assert.Equal(t, 6, updated.MaxCapacity)
	assert.Equal(t, "B", updated.Zone)
}

func TestDeactivateTable(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	table := seedTable(t, db, models.Table{TableNumber: "C1", MaxCapacity: 4})

	router := setupTableRouter(db)

	w := performJSON(router, "DELETE", fmt.Sprintf("/tables/%d", table.ID), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var updated models.Table
	db.First(&updated, table.ID)
	assert.False(t, updated.IsActive)
}

func TestSeedTablesCreatesSampleRoster(t *testing.T) {
	utils.InitLogger()
	db := setupTestDB(t)
	router := setupTableRouter(db)

	w := performJSON(router, "POST", "/tables/seed", nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	var count int64
	db.Model(&models.Table{}).Where("branch_code = ?", testBranch).Count(&count)
	assert.Equal(t, int64(8), count)

	// Seed kedua tidak boleh menduplikasi roster
	w = performJSON(router, "POST", "/tables/seed", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	db.Model(&models.Table{}).Where("branch_code = ?", testBranch).Count(&count)
	assert.Equal(t, int64(8), count)
}
