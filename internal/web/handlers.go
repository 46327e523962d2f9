package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"text/template"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hlzx-cpu/VEX-rankings/internal/rating"
)

var pageTemplate = template.Must(template.New("dashboard").Parse(dashboardPage))

// rankingsResponse is the payload the dashboard page polls for. Demo
// marks placeholder rows served while no snapshot exists yet.
type rankingsResponse struct {
	Rows      []rating.Row `json:"rows"`
	UpdatedAt string       `json:"updated_at,omitempty"`
	Status    string       `json:"status,omitempty"`
	Demo      bool         `json:"demo"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := struct {
		Years      string
		PollMillis int64
	}{
		Years:      fmt.Sprintf("%d-%d", s.seasonYear, s.seasonYear+1),
		PollMillis: s.pollEvery.Milliseconds(),
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		log.Error().Err(err).Msg("Failed to render dashboard page")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	var resp rankingsResponse

	rows, err := s.store.Load()
	switch {
	case err == nil:
		resp.Rows = rows
		if mod, statErr := s.store.ModTime(); statErr == nil {
			resp.UpdatedAt = mod.UTC().Format(time.RFC3339)
		}
	case errors.Is(err, fs.ErrNotExist):
		resp.Rows = demoRows()
		resp.Demo = true
		resp.Status = fmt.Sprintf("⚠️  未找到 %s，请先运行 fetcher 生成数据。", filepath.Base(s.store.Path()))
	default:
		log.Warn().Err(err).Msg("Failed to load rankings snapshot")
		resp.Rows = demoRows()
		resp.Demo = true
		resp.Status = fmt.Sprintf("⚠️  读取数据失败: %v", err)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// demoRows is the placeholder table shown before the first refresh
// cycle publishes real data.
func demoRows() []rating.Row {
	return []rating.Row{
		{Team: "UCF", Rating: 1750, ScheduleStrength: 0.435, DriverSkills: 112, ProgrammingSkills: 105},
		{Team: "SZTU1", Rating: 1555, ScheduleStrength: 0.315, DriverSkills: 100, ProgrammingSkills: 85},
		{Team: "BAD", Rating: 1680, ScheduleStrength: 0.595, DriverSkills: 88, ProgrammingSkills: 60},
		{Team: "UPSP1", Rating: 1720, ScheduleStrength: 0.455, DriverSkills: 105, ProgrammingSkills: 95},
		{Team: "CPSLO", Rating: 1660, ScheduleStrength: 0.470, DriverSkills: 72, ProgrammingSkills: 70},
		{Team: "BLRS2", Rating: 1665, ScheduleStrength: 0.510, DriverSkills: 82, ProgrammingSkills: 75},
		{Team: "OBR", Rating: 1635, ScheduleStrength: 0.345, DriverSkills: 60, ProgrammingSkills: 40},
		{Team: "TMAT1", Rating: 1660, ScheduleStrength: 0.570, DriverSkills: 90, ProgrammingSkills: 65},
		{Team: "VCAT", Rating: 1620, ScheduleStrength: 0.415, DriverSkills: 68, ProgrammingSkills: 50},
		{Team: "IEST1", Rating: 1595, ScheduleStrength: 0.325, DriverSkills: 55, ProgrammingSkills: 35},
	}
}
