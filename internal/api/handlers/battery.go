package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"battery-benchmark/internal/api/models"
	"battery-benchmark/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// BatteryHandler serves battery presets from a YAML directory.
type BatteryHandler struct {
	batteryDir string
}

// NewBatteryHandler creates a new battery handler. The directory defaults to
// examples/batteries under the working directory, overridable via BATTERY_DIR.
func NewBatteryHandler() *BatteryHandler {
	dir := os.Getenv("BATTERY_DIR")
	if dir == "" {
		dir = filepath.Join("examples", "batteries")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log.Printf("[Battery] Using battery directory: %s", dir)
	return &BatteryHandler{batteryDir: dir}
}

// BatteryDir returns the preset directory path.
func (h *BatteryHandler) BatteryDir() string { return h.batteryDir }

// ListBatteries handles GET /api/v1/batteries.
func (h *BatteryHandler) ListBatteries(c *gin.Context) {
	batteries := []models.BatteryInfo{}

	entries, err := os.ReadDir(h.batteryDir)
	if err != nil {
		log.Printf("[Battery] Failed to read battery directory %s: %v", h.batteryDir, err)
		c.JSON(http.StatusOK, gin.H{"batteries": batteries})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		info, err := loadBatteryInfo(filepath.Join(h.batteryDir, entry.Name()), entry.Name())
		if err != nil {
			log.Printf("[Battery] Skipping invalid battery file %s: %v", entry.Name(), err)
			continue
		}
		batteries = append(batteries, *info)
	}

	c.JSON(http.StatusOK, gin.H{"batteries": batteries})
}

type batteryPresetFile struct {
	Battery config.BatteryConfig `yaml:"battery"`
}

func loadBatteryInfo(path, filename string) (*models.BatteryInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var preset batteryPresetFile
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filename, ".yaml")
	name := preset.Battery.Name
	if name == "" {
		name = id
	}
	return &models.BatteryInfo{
		ID:   id,
		Name: name,
		File: filename,
		Specs: models.BatterySpecs{
			MaxPowerKW:     preset.Battery.MaxPowerKW,
			MaxCapacityKWh: preset.Battery.MaxCapacityKWh,
			AllowedCycles:  preset.Battery.AllowedCycles,
		},
	}, nil
}

// loadBatteryPreset resolves a preset referenced by file name from the
// battery directory. Path separators are rejected to keep lookups inside
// the preset directory.
func loadBatteryPreset(batteryDir, file string) (config.BatteryConfig, error) {
	if strings.ContainsAny(file, `/\`) {
		return config.BatteryConfig{}, fmt.Errorf("invalid battery file %q", file)
	}
	if !strings.HasSuffix(file, ".yaml") {
		file += ".yaml"
	}
	raw, err := os.ReadFile(filepath.Join(batteryDir, file))
	if err != nil {
		return config.BatteryConfig{}, err
	}
	var preset batteryPresetFile
	if err := yaml.Unmarshal(raw, &preset); err != nil {
		return config.BatteryConfig{}, err
	}
	return preset.Battery, nil
}
