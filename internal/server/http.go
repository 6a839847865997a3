package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/karupanerura/prefixcalc/internal/equation"
	"github.com/karupanerura/prefixcalc/internal/types"
)

const (
	evaluationsPath = "/v1/evaluations"
	equationsPath   = "/v1/equations"
)

var reloadInterval = 5 * time.Second

type evaluation struct {
	Name       string             `json:"name"`
	CreateTime time.Time          `json:"createTime"`
	Equation   *equation.Equation `json:"equation"`
	Error      any                `json:"error,omitempty"`
}

type evaluationRequest struct {
	Infix string `json:"infix"`
}

type httpHandler struct {
	equations   atomic.Value
	idBase      uint64
	evaluations sync.Map
}

func (h *httpHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == evaluationsPath:
		switch r.Method {
		case http.MethodGet:
			h.listEvaluations(w, r)
			return

		case http.MethodPost:
			h.createEvaluation(w, r)
			return

		default:
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}

	case strings.HasPrefix(r.URL.Path, evaluationsPath+"/"):
		id := strings.TrimPrefix(r.URL.Path, evaluationsPath+"/")
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.getEvaluation(w, r, id)
		return

	case r.URL.Path == equationsPath:
		if r.Method != http.MethodGet {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
			return
		}
		h.listEquations(w, r)
		return

	default:
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
}

func (h *httpHandler) createEvaluation(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("failed to decode request body: %v", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := fmt.Sprintf("%012x", atomic.AddUint64(&h.idBase, 1))
	ev := &evaluation{
		Name:       evaluationsPath + "/" + id,
		CreateTime: time.Now().UTC(),
		Equation:   equation.Process(req.Infix),
	}
	if err := ev.Equation.Err; err != nil {
		var exception types.Exception
		if errors.As(err, &exception) {
			ev.Error = exception.Exception()
		} else {
			ev.Error = err.Error()
		}
	}

	h.evaluations.Store(id, ev)
	if err := resJSON(w, http.StatusOK, ev); err != nil {
		log.Printf("failed to write evaluation: %v", err)
	}
}

func (h *httpHandler) listEvaluations(w http.ResponseWriter, r *http.Request) {
	results := []*evaluation{}
	h.evaluations.Range(func(key, value any) bool {
		results = append(results, value.(*evaluation))
		return true
	})
	sort.Slice(results, func(i, j int) bool {
		if results[i].CreateTime.Equal(results[j].CreateTime) {
			return results[i].Name < results[j].Name
		}
		return results[i].CreateTime.Before(results[j].CreateTime)
	})

	if err := resJSON(w, http.StatusOK, map[string][]*evaluation{"evaluations": results}); err != nil {
		log.Printf("failed to write evaluations: %v", err)
	}
}

func (h *httpHandler) getEvaluation(w http.ResponseWriter, r *http.Request, id string) {
	ret, ok := h.evaluations.Load(id)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if err := resJSON(w, http.StatusOK, ret.(*evaluation)); err != nil {
		log.Printf("failed to write evaluation: %v", err)
	}
}

func (h *httpHandler) listEquations(w http.ResponseWriter, r *http.Request) {
	equations, ok := h.equations.Load().([]*equation.Equation)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}

	if err := resJSON(w, http.StatusOK, map[string][]*equation.Equation{"equations": equations}); err != nil {
		log.Printf("failed to write equations: %v", err)
	}
}

// NewHTTPHandler returns the evaluation API. When loader is not nil its
// equations are served and reloaded periodically until ctx is done.
func NewHTTPHandler(ctx context.Context, loader func() ([]*equation.Equation, error)) (http.Handler, error) {
	h := &httpHandler{}
	if loader == nil {
		return h, nil
	}

	equations, err := loader()
	if err != nil {
		return nil, err
	}
	h.equations.Store(equations)

	go func() {
		t := time.NewTicker(reloadInterval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}

			equations, err := loader()
			if err != nil {
				log.Printf("failed to reload equations: %v", err)
				continue
			}
			h.equations.Store(equations)
		}
	}()
	return h, nil
}

func resJSON(w http.ResponseWriter, status int, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json.MarshalIndent: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(b)+1))
	w.WriteHeader(status)

	if _, err = w.Write(b); err != nil {
		return fmt.Errorf("w.Write: %w", err)
	}
	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}
	return nil
}
