package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hiramaya/reservation-app/config"
	"github.com/hiramaya/reservation-app/models"
	"github.com/hiramaya/reservation-app/utils"
	"gorm.io/gorm"
)

// branchFromQuery membaca kode cabang dari query, fallback ke default.
func branchFromQuery(c *gin.Context) string {
	if branch := c.Query("branch_code"); branch != "" {
		return branch
	}
	return config.DefaultBranch()
}

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// CreateTable -> menambahkan meja baru ke roster cabang
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber string `json:"table_number" binding:"required"`
		Name        string `json:"name"`
		MinCapacity int    `json:"min_capacity"`
		MaxCapacity int    `json:"max_capacity" binding:"required,min=1"`
		TableType   string `json:"table_type"`
		Zone        string `json:"zone"`
		HasWindow   bool   `json:"has_window"`
		Priority    int    `json:"priority"`
		Notes       string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	table := models.Table{
		BranchCode:  branchFromQuery(c),
		TableNumber: req.TableNumber,
		Name:        req.Name,
		MinCapacity: req.MinCapacity,
		MaxCapacity: req.MaxCapacity,
		TableType:   models.TableTypeRegular,
		Zone:        req.Zone,
		HasWindow:   req.HasWindow,
		Priority:    req.Priority,
		IsActive:    true,
		Notes:       req.Notes,
	}
	if table.MinCapacity <= 0 {
		table.MinCapacity = 1
	}
	if req.TableType != "" {
		table.TableType = models.TableType(req.TableType)
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %s (capacity=%d)", table.TableNumber, table.MaxCapacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// GetAllTables -> menampilkan roster meja satu cabang
func (tc *TableController) GetAllTables(c *gin.Context) {
	query := tc.DB.Where("branch_code = ?", branchFromQuery(c))
	if c.Query("include_inactive") != "true" {
		query = query.Where("is_active = ?", true)
	}

	var tables []models.Table
	if err := query.Order("zone, table_number").Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail satu meja
func (tc *TableController) GetTableByID(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> update sebagian field konfigurasi meja
func (tc *TableController) UpdateTable(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		MinCapacity *int    `json:"min_capacity"`
		MaxCapacity *int    `json:"max_capacity"`
		TableType   *string `json:"table_type"`
		Zone        *string `json:"zone"`
		HasWindow   *bool   `json:"has_window"`
		Priority    *int    `json:"priority"`
		IsActive    *bool   `json:"is_active"`
		Notes       *string `json:"notes"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	if req.Name != nil {
		table.Name = *req.Name
	}
	if req.MinCapacity != nil {
		table.MinCapacity = *req.MinCapacity
	}
	if req.MaxCapacity != nil {
		table.MaxCapacity = *req.MaxCapacity
	}
	if req.TableType != nil {
		table.TableType = models.TableType(*req.TableType)
	}
	if req.Zone != nil {
		table.Zone = *req.Zone
	}
	if req.HasWindow != nil {
		table.HasWindow = *req.HasWindow
	}
	if req.Priority != nil {
		table.Priority = *req.Priority
	}
	if req.IsActive != nil {
		table.IsActive = *req.IsActive
	}
	if req.Notes != nil {
		table.Notes = *req.Notes
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d updated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// DeactivateTable -> soft delete, meja keluar dari roster aktif
func (tc *TableController) DeactivateTable(c *gin.Context) {
	var table models.Table
	if err := tc.DB.First(&table, c.Param("table_id")).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	table.IsActive = false
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Table %d deactivated", table.ID)
	utils.RespondJSON(c, http.StatusOK, "Table deactivated", gin.H{
		"id": table.ID,
	})
}

// SeedTables -> membuat roster contoh untuk cabang yang masih kosong:
// 4 meja ber-4, 3 meja ber-6, 1 private ber-8
func (tc *TableController) SeedTables(c *gin.Context) {
	branch := branchFromQuery(c)

	var count int64
	if err := tc.DB.Model(&models.Table{}).Where("branch_code = ?", branch).Count(&count).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if count > 0 {
		utils.RespondJSON(c, http.StatusOK, "Branch already has tables", gin.H{"count": count})
		return
	}

	tables := []models.Table{
		{TableNumber: "A1", Zone: "A", MaxCapacity: 4},
		{TableNumber: "A2", Zone: "A", MaxCapacity: 4},
		{TableNumber: "A3", Zone: "A", MaxCapacity: 4, HasWindow: true},
		{TableNumber: "A4", Zone: "A", MaxCapacity: 4, HasWindow: true},
		{TableNumber: "B1", Zone: "B", MaxCapacity: 6},
		{TableNumber: "B2", Zone: "B", MaxCapacity: 6},
		{TableNumber: "B3", Zone: "B", MaxCapacity: 6},
		{TableNumber: "VIP1", Zone: "VIP", MaxCapacity: 8, TableType: models.TableTypePrivate, Priority: 5},
	}
	for i := range tables {
		tables[i].BranchCode = branch
		tables[i].MinCapacity = 1
		tables[i].IsActive = true
		if tables[i].TableType == "" {
			tables[i].TableType = models.TableTypeRegular
		}
	}

	if err := tc.DB.Create(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Seeded %d tables for branch %s", len(tables), branch)
	utils.RespondJSON(c, http.StatusCreated, "Sample tables created", tables)
}
