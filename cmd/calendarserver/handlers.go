package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	chihlee "github.com/ctlin/chihlee-calendar"
	"github.com/ctlin/chihlee-calendar/edgestore"
	"github.com/gin-gonic/gin"
)

// server holds the edge service's shared collaborators; one instance is
// wired into every gin handler via closures in registerRoutes.
type server struct {
	cfg    Config
	cache  Cache
	store  *edgestore.Store
	client *http.Client
}

func registerRoutes(r *gin.Engine, s *server) {
	v1 := r.Group("/api/v1")
	v1.GET("/current_semester", s.handleCurrentSemester)
	v1.GET("/cal_link", s.handleCalLink)
	v1.GET("/csv", s.handleCSV)
}

func (s *server) handleCurrentSemester(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"semester": CurrentSemester(time.Now())})
}

func (s *server) handleCalLink(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("all") == "true" {
		entries, err := s.store.ListCatalogEntries(ctx)
		if err != nil {
			writeProblem(c, err)
			return
		}
		out := make([]gin.H, len(entries))
		for i, e := range entries {
			out[i] = gin.H{"semester": e.Semester, "pdf_url": e.PDFURL}
		}
		c.JSON(http.StatusOK, gin.H{"entries": out})
		return
	}

	semester, err := resolveSemesterParam(c)
	if err != nil {
		writeProblemWithCategory(c, ProblemParse, http.StatusBadRequest, err)
		return
	}

	entry, err := s.store.GetCatalogEntry(ctx, semester)
	if err != nil {
		writeProblem(c, fmt.Errorf("%w: semester %d", errNotFound, semester))
		return
	}
	c.JSON(http.StatusOK, gin.H{"semester": entry.Semester, "pdf_url": entry.PDFURL})
}

func (s *server) handleCSV(c *gin.Context) {
	ctx := c.Request.Context()

	semester, err := resolveSemesterParam(c)
	if err != nil {
		writeProblemWithCategory(c, ProblemParse, http.StatusBadRequest, err)
		return
	}

	force := c.Query("force") == "true"
	cacheKey := fmt.Sprintf("csv:%d", semester)

	if !force {
		if val, status, err := s.cache.Get(ctx, cacheKey); err == nil && status == CacheHit {
			serveCSV(c, semester, val, CacheHit)
			return
		}
		if entry, err := s.store.GetCSV(ctx, cacheKey); err == nil {
			s.cache.Set(ctx, cacheKey, entry.CSVData, time.Hour)
			serveCSV(c, semester, entry.CSVData, CacheHit)
			return
		}
	}

	entry, err := s.store.GetCatalogEntry(ctx, semester)
	if err != nil {
		writeProblem(c, fmt.Errorf("%w: semester %d", errNotFound, semester))
		return
	}

	pdfBytes, err := s.fetchPDF(ctx, entry.PDFURL)
	if err != nil {
		writeProblem(c, fmt.Errorf("%w: %v", errUpstream, err))
		return
	}

	csvText, _, err := chihlee.ExtractPDFBytesToCSVString(pdfBytes, chihlee.WithCleanCalendar())
	if err != nil {
		writeProblem(c, err)
		return
	}

	status := CacheMiss
	if force {
		status = CacheBypass
	}

	s.cache.Set(ctx, cacheKey, csvText, time.Hour)
	hash := sha256.Sum256([]byte(csvText))
	if err := s.store.PutCSV(ctx, cacheKey, semester, csvText, hex.EncodeToString(hash[:])); err != nil {
		gin.DefaultErrorWriter.Write([]byte(fmt.Sprintf("calendarserver: persisting csv cache: %v\n", err)))
	}

	serveCSV(c, semester, csvText, status)
}

func (s *server) fetchPDF(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

func serveCSV(c *gin.Context, semester int, csvText string, status CacheStatus) {
	c.Header("X-Cache-Status", string(status))
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="chihlee-calendar-%d.csv"`, semester))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvText))
}

func resolveSemesterParam(c *gin.Context) (int, error) {
	raw := c.Query("semester")
	if raw == "" {
		return CurrentSemester(time.Now()), nil
	}
	semester, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid semester %q", raw)
	}
	if err := ValidateSemester(semester); err != nil {
		return 0, err
	}
	return semester, nil
}

func writeProblem(c *gin.Context, err error) {
	category, status := categorize(err)
	c.JSON(status, problem{Category: category, Message: err.Error()})
}

func writeProblemWithCategory(c *gin.Context, category ProblemCategory, status int, err error) {
	c.JSON(status, problem{Category: category, Message: err.Error()})
}
