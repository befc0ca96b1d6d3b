package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"userhub-backend/internal/models"
)

// SystemHandler serves the host snapshot for the dashboard's system panel.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Get returns hostname, uptime and current CPU/memory usage.
func (h *SystemHandler) Get(w http.ResponseWriter, r *http.Request) {
	info := models.SystemInfo{}

	if hostInfo, err := host.Info(); err == nil {
		info.Hostname = hostInfo.Hostname
		info.Platform = hostInfo.Platform
		info.UptimeSeconds = hostInfo.Uptime
	} else {
		log.Warn().Err(err).Msg("Failed to read host info")
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemoryPercent = vm.UsedPercent
		info.MemoryUsedMB = vm.Used / 1024 / 1024
		info.MemoryTotalMB = vm.Total / 1024 / 1024
	}

	writeJSON(w, http.StatusOK, info)
}
