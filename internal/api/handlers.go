// handlers.go implements the REST route handlers.
//
// Every handler writes one audit entry through internal/log with source
// "api:{route}", mirroring how CLI commands and MCP tools are audited.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/jpl-au/bookrab/internal/fault"
	"github.com/jpl-au/bookrab/internal/log"
	"github.com/jpl-au/bookrab/internal/search"
	"github.com/jpl-au/bookrab/internal/tag"
)

// multipartMemory is how much of an upload is held in memory before the
// multipart reader spills to temp files.
const multipartMemory = 32 << 20

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	docs, err := s.svc.List(r.Context())
	log.Event("api:list", "list").Detail("count", len(docs)).Write(err)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.svc.Tags(r.Context())
	log.Event("api:tags", "list").Detail("count", len(tags)).Write(err)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tags)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	title := mux.Vars(r)["title"]
	var err error
	var res search.Results
	defer func() {
		log.Event("api:search", "search").Path(title).
			Detail("pattern", r.URL.Query().Get("pattern")).
			Detail("chunks", len(res.Results)).
			Write(err)
	}()

	q, err := parseQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}
	res, err = s.svc.Search(r.Context(), title, q)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleSearchByTags(w http.ResponseWriter, r *http.Request) {
	var err error
	var results []search.Results
	defer func() {
		log.Event("api:search", "search").
			Detail("pattern", r.URL.Query().Get("pattern")).
			Detail("books", len(results)).
			Write(err)
	}()

	q, err := parseQuery(r)
	if err != nil {
		respondError(w, err)
		return
	}
	include, err := parseTagQuery(r, "include")
	if err != nil {
		respondError(w, err)
		return
	}
	exclude, err := parseTagQuery(r, "exclude")
	if err != nil {
		respondError(w, err)
		return
	}
	results, err = s.svc.SearchByTags(r.Context(), include, exclude, q)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	var err error
	var title string
	defer func() {
		log.Event("api:upload", "write").Path(title).Write(err)
	}()

	if err = r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			writeError(w, http.StatusRequestEntityTooLarge, fault.CodeBadInput,
				fmt.Errorf("upload exceeds %d bytes", s.cfg.MaxUpload))
			return
		}
		err = fault.Input(fault.CodeBadInput, "parse multipart form", "", err)
		respondError(w, err)
		return
	}

	file, header, err := r.FormFile("book")
	if err != nil {
		err = fault.Input(fault.CodeBadInput, "read form field", "book", err)
		respondError(w, err)
		return
	}
	defer file.Close()

	// A part without a content type is taken as text; the UTF-8 check in
	// Upload still applies.
	ct := header.Header.Get("Content-Type")
	if mt, _, perr := mime.ParseMediaType(ct); ct != "" && (perr != nil || mt != "text/plain") {
		err = fault.Input(fault.CodeNotPlainText, "upload", header.Filename,
			fmt.Errorf("content type %q is not text/plain", ct))
		respondError(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		err = fault.IO(fault.CodeReadFile, "read upload", header.Filename, err)
		respondError(w, err)
		return
	}

	title = r.FormValue("title")
	if title == "" {
		base := filepath.Base(header.Filename)
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	tags, err := parseTags(r.FormValue("tags"))
	if err != nil {
		respondError(w, err)
		return
	}

	if err = s.svc.Upload(r.Context(), title, string(data), tags); err != nil {
		if fault.KindOf(err) == fault.KindEncoding {
			writeError(w, http.StatusBadRequest, fault.CodeOf(err), err)
			return
		}
		respondError(w, err)
		return
	}
	doc, err := s.svc.Get(r.Context(), title)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.svc.History(r.Context())
	log.Event("api:history", "list").Detail("count", len(entries)).Write(err)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// parseQuery reads pattern, before, after, ignore_case and smart_case.
func parseQuery(r *http.Request) (search.Query, error) {
	v := r.URL.Query()
	q := search.Query{Pattern: v.Get("pattern")}
	var err error
	if q.Before, err = nonNegative(v.Get("before"), "before"); err != nil {
		return q, err
	}
	if q.After, err = nonNegative(v.Get("after"), "after"); err != nil {
		return q, err
	}
	if q.IgnoreCase, err = boolParam(v.Get("ignore_case"), "ignore_case"); err != nil {
		return q, err
	}
	if q.SmartCase, err = boolParam(v.Get("smart_case"), "smart_case"); err != nil {
		return q, err
	}
	return q, nil
}

// parseTagQuery reads "<prefix>" as a comma list and "<prefix>_mode".
func parseTagQuery(r *http.Request, prefix string) (tag.Query, error) {
	v := r.URL.Query()
	q := tag.Query{Tags: tag.Parse(v.Get(prefix))}
	if m := v.Get(prefix + "_mode"); m != "" {
		mode, err := tag.ParseMode(m)
		if err != nil {
			return q, fault.Input(fault.CodeBadInput, "parse "+prefix+"_mode", m, err)
		}
		q.Mode = mode
	}
	return q, nil
}

// parseTags accepts a JSON array of strings or a comma list.
func parseTags(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}, nil
	}
	if strings.HasPrefix(s, "[") {
		var tags []string
		if err := json.Unmarshal([]byte(s), &tags); err != nil {
			return nil, fault.Input(fault.CodeInvalidData, "parse tags", s, err)
		}
		return tags, nil
	}
	return tag.Parse(s), nil
}

func nonNegative(s, name string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fault.Input(fault.CodeBadInput, "parse "+name, s,
			fmt.Errorf("%s must be a non-negative integer", name))
	}
	return n, nil
}

func boolParam(s, name string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fault.Input(fault.CodeBadInput, "parse "+name, s,
			fmt.Errorf("%s must be true or false", name))
	}
	return b, nil
}
