package server

import (
	// Go Internal Packages
	"io"
	"net/http"

	// External Packages
	"go.uber.org/zap"
)

// handleUpload accepts one multipart file under the "file" field and
// processes it as a single batch. Rows that fail validation do not fail
// the request; the response always carries the full post-batch state.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "No files were uploaded.")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "Failed to read uploaded file.")
		return
	}

	result, err := s.ingestion.ProcessUpload(r.Context(), header.Filename, data)
	if err != nil {
		s.logger.Error("upload failed", zap.String("filename", header.Filename), zap.Error(err))
		writeMessage(w, statusOf(err), "Failed to process uploaded file.")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("accountId")

	account, err := s.reports.Account(r.Context(), accountID)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			writeMessage(w, http.StatusNotFound, "Account not found")
			return
		}
		s.logger.Error("account lookup failed", zap.String("accountId", accountID), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch account")
		return
	}

	writeJSON(w, http.StatusOK, account)
}

func (s *Server) handleAccountTransactions(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("accountId")

	txs, err := s.reports.AccountHistory(r.Context(), accountID)
	if err != nil {
		if statusOf(err) == http.StatusNotFound {
			writeMessage(w, http.StatusNotFound, "No transactions found for account "+accountID)
			return
		}
		s.logger.Error("history lookup failed", zap.String("accountId", accountID), zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	report, err := s.reports.Report(r.Context())
	if err != nil {
		s.logger.Error("report failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch report"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := s.ingestion.Reset(r.Context()); err != nil {
		s.logger.Error("reset failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, "System reset failed.")
		return
	}

	writeText(w, http.StatusOK, "System reset successful.")
}
