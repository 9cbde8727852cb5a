package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"

	pathquery "github.com/ritamzico/pathquery"
	"github.com/ritamzico/pathquery/internal/serialization"
)

var allowedOrigins = []string{
	"http://localhost:5173",
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func corsMiddleware(next http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func main() {
	port := flag.Int("port", 8080, "port to listen on")
	flag.Parse()

	mux := http.NewServeMux()

	// /compile runs a whole session in one request: a field schema plus a
	// sequence of DECLARE/REGISTER/COMPILE lines. It reports the last
	// COMPILE result, since a session with no trailing COMPILE has nothing
	// to report back.
	mux.HandleFunc("/compile", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		var body struct {
			Schema serialization.Schema `json:"schema"`
			Lines  []string             `json:"lines"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		if len(body.Schema) == 0 {
			writeError(w, http.StatusBadRequest, "missing field: schema")
			return
		}
		if len(body.Lines) == 0 {
			writeError(w, http.StatusBadRequest, "missing field: lines")
			return
		}

		compiler := pathquery.New(body.Schema)

		var last *pathquery.CompileResult
		for i, line := range body.Lines {
			res, err := compiler.Exec(line)
			if err != nil {
				writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("line %d (%q): %v", i, line, err))
				return
			}
			if res != nil {
				last = res
			}
		}

		if last == nil {
			writeError(w, http.StatusUnprocessableEntity, "session never reached a COMPILE query")
			return
		}

		b, err := pathquery.MarshalResultJSON(last)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	})

	addr := fmt.Sprintf(":%d", *port)
	fmt.Printf("pathquery server listening on %s\n", addr)
	if err := http.ListenAndServe(addr, corsMiddleware(mux)); err != nil {
		fmt.Fprintf(flag.CommandLine.Output(), "server error: %v\n", err)
	}
}
