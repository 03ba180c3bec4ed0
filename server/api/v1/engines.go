package v1

import (
	"encoding/json"
	"net/http"

	"github.com/zintix-labs/randlab"
	"github.com/zintix-labs/randlab/server/httperr"
)

type EnginesHandler struct {
	Lab *randlab.Lab
}

func NewEnginesHandler(lab *randlab.Lab) (*EnginesHandler, error) {
	return &EnginesHandler{Lab: lab}, nil
}

// Engines 列出目錄內所有引擎的規格投影（EID、名稱、家族、字寬、狀態大小）。
func (eh *EnginesHandler) Engines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum, err := eh.Lab.Summary()
	if err != nil {
		httperr.Errs(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sum); err != nil {
		httperr.Errs(w, err)
		return
	}
}
