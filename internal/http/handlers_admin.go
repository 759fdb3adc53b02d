package httpapi

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"mokha/internal/domain"
)

type adminLoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// @Summary Back-office login
// @Tags admin
// @Accept json
// @Produce json
// @Param input body adminLoginReq true "Credentials"
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /admin/login [post]
func (s *Server) adminLogin(c *gin.Context) {
	var req adminLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	token, err := s.admin.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// @Summary List employees
// @Tags employees
// @Produce json
// @Success 200 {array} domain.Employee
// @Security BearerAuth
// @Router /admin/employees [get]
func (s *Server) listEmployees(c *gin.Context) {
	list, err := s.svc.Employees.List(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Create employee
// @Tags employees
// @Accept json
// @Produce json
// @Param input body domain.Employee true "Employee"
// @Success 201 {object} domain.Employee
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/employees [post]
func (s *Server) createEmployee(c *gin.Context) {
	var req domain.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	e, err := s.svc.Employees.Create(c, req)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, e)
}

// @Summary Update employee
// @Tags employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param input body domain.Employee true "Employee"
// @Success 200 {object} domain.Employee
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/employees/{id} [put]
func (s *Server) updateEmployee(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req domain.Employee
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	req.ID = id
	e, err := s.svc.Employees.Update(c, req)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

// @Summary Delete employee
// @Tags employees
// @Param id path int true "Employee ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /admin/employees/{id} [delete]
func (s *Server) deleteEmployee(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := s.svc.Employees.Delete(c, id); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Get settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.AppSettings
// @Security BearerAuth
// @Router /admin/settings [get]
func (s *Server) getSettings(c *gin.Context) {
	settings, err := s.svc.Settings.Get(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary Replace settings
// @Tags settings
// @Accept json
// @Produce json
// @Param input body domain.AppSettings true "Settings"
// @Success 200 {object} domain.AppSettings
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/settings [put]
func (s *Server) updateSettings(c *gin.Context) {
	var req domain.AppSettings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if err := s.svc.Settings.Update(c, req); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, req)
}

// @Summary Inventory report
// @Tags reports
// @Produce json
// @Success 200 {object} service.InventoryReport
// @Security BearerAuth
// @Router /admin/reports/inventory [get]
func (s *Server) inventoryReport(c *gin.Context) {
	report, err := s.svc.Reports.Inventory(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Download a full backup
// @Tags backup
// @Produce json
// @Success 200 {object} service.BackupFile
// @Security BearerAuth
// @Router /admin/backup [get]
func (s *Server) downloadBackup(c *gin.Context) {
	var buf bytes.Buffer
	filename, err := s.svc.Backup.Snapshot(c, &buf)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", buf.Bytes())
}

// @Summary Restore from a backup document
// @Tags backup
// @Accept json
// @Success 204
// @Failure 400 {object} map[string]string
// @Security BearerAuth
// @Router /admin/backup/restore [post]
func (s *Server) restoreBackup(c *gin.Context) {
	if err := s.svc.Backup.Restore(c, c.Request.Body); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
