package receipt

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

const maxBodySize = 1 << 20 // 1MB

// Error messages returned to clients
const (
	msgInvalidReceipt = "The receipt is invalid."
	msgNotFound       = "No receipt found for that ID."
	msgInternal       = "Internal server error"
)

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

// writeJSON writes v as a JSON response with the given status code
func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError writes a JSON error body
func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}

// decodeReceipt reads a receipt from the request body
func decodeReceipt(r *http.Request, w http.ResponseWriter) (Receipt, error) {
	var receipt Receipt
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&receipt); err != nil {
		return Receipt{}, &MalformedRequestError{Err: err}
	}
	if dec.More() {
		return Receipt{}, &MalformedRequestError{Err: errors.New("unexpected data after receipt")}
	}
	return receipt, nil
}

// handleProcessReceipt stores a submitted receipt and returns its ID
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := decodeReceipt(r, w)
	if err != nil {
		slog.Warn("Rejected receipt", "error", err)
		writeError(w, http.StatusBadRequest, msgInvalidReceipt)
		return
	}

	id, err := s.service.ProcessReceipt(receipt)
	if err != nil {
		slog.Error("Error processing receipt", "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleGetPoints returns the points awarded to a stored receipt
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	points, err := s.service.Points(id)
	if err != nil {
		var notFound *NotFoundError
		var invalid *InvalidReceiptError
		switch {
		case errors.As(err, &notFound):
			writeError(w, http.StatusNotFound, msgNotFound)
		case errors.As(err, &invalid):
			slog.Warn("Receipt cannot be scored", "id", id, "rule", invalid.Rule, "field", invalid.Field, "error", err)
			writeError(w, http.StatusUnprocessableEntity, invalid.Error())
		default:
			slog.Error("Error scoring receipt", "id", id, "error", err)
			writeError(w, http.StatusInternalServerError, msgInternal)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}
