package monitor

import (
	"bufio"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	defaultTailLines = 200
	maxTailLines     = 2000
)

// RegisterLogsRoute serves the last ?lines= lines of the API log file as plain text.
// The caller is responsible for putting admin-only middleware on r.
func RegisterLogsRoute(r gin.IRoutes, logPath string) {
	r.GET("/logs", func(c *gin.Context) {
		n := defaultTailLines
		if raw := strings.TrimSpace(c.Query("lines")); raw != "" {
			v, err := strconv.Atoi(raw)
			if err != nil || v <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid lines parameter"})
				return
			}
			n = min(v, maxTailLines)
		}

		f, err := os.Open(logPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				c.Data(http.StatusOK, "text/plain; charset=utf-8", nil)
				return
			}
			log.Printf("monitor: open %s: %v", logPath, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}
		defer f.Close()

		lines, err := tailLines(f, n)
		if err != nil {
			log.Printf("monitor: read %s: %v", logPath, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to read log"})
			return
		}

		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(strings.Join(lines, "\n")))
	})
}

// tailLines returns at most n trailing lines of r, oldest first.
func tailLines(r io.Reader, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	ring := make([]string, n)
	count := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		ring[count%n] = sc.Text()
		count++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	if count <= n {
		return ring[:count], nil
	}
	start := count % n
	out := make([]string, 0, n)
	out = append(out, ring[start:]...)
	out = append(out, ring[:start]...)
	return out, nil
}
