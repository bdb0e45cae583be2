package handlers

import (
	"fmt"
	"net/http"

	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/export"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/httpserver/deps"
	"github.com/Aditya-Goel-Compro/imp-link-manager/internal/logger"
)

// ExportExcel streams a two-sheet workbook (Office / Personal) with every
// saved link.
func ExportExcel(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links, err := d.Links.ListLinks(r.Context(), "")
		if err != nil {
			d.Logger.Error("failed to list links for export", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		f, err := export.Workbook(links)
		if err != nil {
			d.Logger.Error("failed to build workbook", logger.Error(err))
			respondError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		w.Header().Set("Content-Type", export.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
		w.Header().Set("Cache-Control", "no-store")

		if err := f.Write(w); err != nil {
			// Headers are already out; all we can do is log.
			d.Logger.Error("failed to stream workbook", logger.Error(err))
		}

		d.Logger.Info("links exported", logger.Int("count", len(links)))
	}
}
