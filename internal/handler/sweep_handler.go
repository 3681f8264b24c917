package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tpch-sweep/internal/model"
	"tpch-sweep/internal/service"
)

type SweepHandler struct {
	artifacts service.Artifacts
	sweep     model.SweepConfig
}

func NewSweepHandler(artifacts service.Artifacts, sweep model.SweepConfig) *SweepHandler {
	return &SweepHandler{artifacts: artifacts, sweep: sweep}
}

// GetStatus 当前 sweep 进度（读取状态文件和名称文件）
func (h *SweepHandler) GetStatus(c *gin.Context) {
	st, err := h.artifacts.Snapshot()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	total := h.sweep.Iterations * len(h.sweep.CoreCounts)
	started := len(st.Lines)
	if st.Done {
		started--
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  st,
		"started": started,
		"total":   total,
	})
}

// GetPlan 按当前配置展开的网格与调用参数，不执行任何东西
func (h *SweepHandler) GetPlan(c *gin.Context) {
	layout := service.NewLayout(h.sweep, time.Now())
	points := service.BuildGrid(h.sweep.Iterations, h.sweep.CoreCounts)

	type planItem struct {
		Point      model.RunPoint   `json:"point"`
		Invocation model.Invocation `json:"invocation"`
		Args       []string         `json:"args"`
	}
	items := make([]planItem, 0, len(points))
	for _, p := range points {
		inv := service.BuildInvocation(h.sweep, p, layout.Dir)
		items = append(items, planItem{Point: p, Invocation: inv, Args: inv.Args()})
	}

	c.JSON(http.StatusOK, gin.H{
		"result_dir": layout.Dir,
		"runs":       items,
	})
}
