package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/RamiAldahir/Pokedex-Tracker/internal/catalog"
	"github.com/RamiAldahir/Pokedex-Tracker/internal/source"
)

// maxUpdateBody bounds the JSON body of /api/update.
const maxUpdateBody = 1 << 20

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(s.cfg.Server.StaticDir, "index.html")
	if _, err := os.Stat(index); err != nil {
		writeError(w, http.StatusNotFound, "index.html not found")
		return
	}
	http.ServeFile(w, r, index)
}

func (s *Server) handleGeneration(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid generation number")
		return
	}

	records, err := s.catalog.Store().Generation(n)
	if errors.Is(err, catalog.ErrGenerationNotFound) {
		writeError(w, http.StatusBadRequest, "Invalid generation number")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeCacheable(w, r, records)
}

func (s *Server) handleGenerations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Store().Summary())
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.catalog.Store().Status())
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	reader, err := s.readerFor(s.cfg)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload data: "+err.Error())
		return
	}

	stats, err := s.catalog.Load(r.Context(), catalog.TriggerReload, reader)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload data: "+err.Error())
		return
	}

	writeMessage(w, "Data reloaded successfully", stats)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	limit := s.cfg.Server.MaxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	if err := r.ParseMultipartForm(limit); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds %d MB", s.cfg.Server.MaxUploadMB))
			return
		}
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file part")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}

	reader := source.FromUpload(filepath.Base(header.Filename), file, s.cfg.Catalog.Sheet)
	stats, err := s.catalog.Load(r.Context(), catalog.TriggerUpload, reader)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to process file: "+err.Error())
		return
	}

	writeMessage(w, "File uploaded and data loaded successfully", stats)
}

// updateRequest is the body of /api/update. Both fields are required.
type updateRequest struct {
	PokedexNumber *int  `json:"pokedex_number"`
	Collected     *bool `json:"collected"`
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.PokedexNumber == nil || req.Collected == nil {
		writeError(w, http.StatusBadRequest, "pokedex_number and collected are required")
		return
	}

	change, err := s.catalog.Update(*req.PokedexNumber, *req.Collected)
	if errors.Is(err, catalog.ErrRecordNotFound) {
		writeError(w, http.StatusNotFound, "Pokémon not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeMessage(w, "Pokémon updated successfully", change.Record)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
