package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/pension-scheme-calculator/config"
	"github.com/Aashish23092/pension-scheme-calculator/dto"
)

type PayMatrixHandler struct {
	payScales *config.PayScales
}

func NewPayMatrixHandler(payScales *config.PayScales) *PayMatrixHandler {
	return &PayMatrixHandler{
		payScales: payScales,
	}
}

// List handles GET /pay-matrix. An optional ?year= selects the revision in
// force that year.
func (h *PayMatrixHandler) List(c *gin.Context) {
	matrix := h.payScales.Current()
	if raw := c.Query("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			sendError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "year must be a number", nil)
			return
		}
		matrix = h.payScales.ForYear(year)
	}

	resp := dto.PayMatrixResponse{
		Name:   matrix.Name(),
		Levels: make([]dto.PayLevelOptions, 0, matrix.Len()),
	}
	for _, level := range matrix.Levels() {
		salaries, _ := matrix.Salaries(level)
		resp.Levels = append(resp.Levels, dto.PayLevelOptions{Level: level, Salaries: salaries})
	}
	c.JSON(http.StatusOK, resp)
}

// Level handles GET /pay-matrix/:level
func (h *PayMatrixHandler) Level(c *gin.Context) {
	level, ok := h.levelParam(c)
	if !ok {
		return
	}
	salaries, _ := h.payScales.Current().Salaries(level)
	c.JSON(http.StatusOK, dto.PayLevelOptions{Level: level, Salaries: salaries})
}

// Next handles GET /pay-matrix/:level/next?salary=
func (h *PayMatrixHandler) Next(c *gin.Context) {
	level, ok := h.levelParam(c)
	if !ok {
		return
	}

	salary, err := strconv.ParseFloat(c.Query("salary"), 64)
	if err != nil {
		sendError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "salary must be a number", nil)
		return
	}

	next, found := h.payScales.Current().NextSalary(level, salary)
	if !found {
		sendError(c, http.StatusNotFound, dto.ErrorCodeNotFound,
			fmt.Sprintf("no salary above %.0f at level %d", salary, level), nil)
		return
	}
	c.JSON(http.StatusOK, dto.NextSalaryResponse{Level: level, Salary: salary, NextSalary: next})
}

// Promotions handles GET /pay-matrix/:level/promotions
func (h *PayMatrixHandler) Promotions(c *gin.Context) {
	level, ok := h.levelParam(c)
	if !ok {
		return
	}
	levels := h.payScales.Current().HigherLevels(level)
	if levels == nil {
		levels = []int{}
	}
	c.JSON(http.StatusOK, dto.PromotionOptionsResponse{Level: level, Levels: levels})
}

// levelParam parses :level and checks it exists in the current matrix.
func (h *PayMatrixHandler) levelParam(c *gin.Context) (int, bool) {
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		sendError(c, http.StatusBadRequest, dto.ErrorCodeInvalidRequest, "level must be a number", nil)
		return 0, false
	}
	if !h.payScales.Current().HasLevel(level) {
		sendError(c, http.StatusNotFound, dto.ErrorCodeNotFound,
			fmt.Sprintf("pay level %d not found", level), nil)
		return 0, false
	}
	return level, true
}
