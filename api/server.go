package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"kselect/bench"
	"kselect/config"
	"kselect/selection"
)

// maxBenchSize bounds the size a POST /bench request may ask for.
const maxBenchSize = 10_000_000

type Server struct {
	router *gin.Engine
	srv    *http.Server

	benchCfg *config.BenchConfig

	latest     *bench.Report
	latestLock sync.RWMutex

	logger *zap.SugaredLogger
}

func New(cfg *config.ServerConfig, benchCfg *config.BenchConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.HttpPort),
		Handler: router,
	}

	s := &Server{
		router:   router,
		srv:      srv,
		benchCfg: benchCfg,
		logger:   zap.S().Named("[api]"),
	}

	s.router.POST("/select", s.selectValues)
	s.router.POST("/topk", s.topK)
	s.router.GET("/report", s.report)
	s.router.POST("/bench", s.bench)

	return s
}

func (s *Server) Start() {
	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic(err)
		}
	}()

	s.logger.Infof("API server started on [%s]", s.srv.Addr)
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		panic(err)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// SetLatest records report as the one served by GET /report.
func (s *Server) SetLatest(report *bench.Report) {
	s.latestLock.Lock()
	defer s.latestLock.Unlock()
	s.latest = report
}

func (s *Server) Latest() *bench.Report {
	s.latestLock.RLock()
	defer s.latestLock.RUnlock()
	return s.latest
}

type selectRequest struct {
	Values []int64 `json:"values"`
	K      int     `json:"k"`
	Seed   uint64  `json:"seed"`
}

type benchRequest struct {
	Size      int             `json:"size"`
	K         int             `json:"k"`
	Trials    int             `json:"trials"`
	Algorithm bench.Algorithm `json:"algorithm"`
	Seed      uint64          `json:"seed"`
	Verify    bool            `json:"verify"`
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"code":  http.StatusBadRequest,
		"error": err.Error(),
	})
}

func (s *Server) selectValues(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	sel := selection.NewSelector[int64](selection.NewRand(seed), selection.WithThreshold(s.benchCfg.Threshold))

	b, err := sel.Select(req.Values, req.K)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"boundary": b,
		"values":   req.Values,
		"top":      req.Values[b:],
	})
}

func (s *Server) topK(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	top, err := selection.TopKStream(req.Values, req.K)
	if err != nil {
		badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"top": top,
	})
}

func (s *Server) report(c *gin.Context) {
	report := s.Latest()
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"code":  http.StatusNotFound,
			"error": "no benchmark has run yet",
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) bench(c *gin.Context) {
	req := benchRequest{
		Size:      s.benchCfg.Size,
		K:         s.benchCfg.K,
		Trials:    s.benchCfg.Trials,
		Algorithm: bench.Algorithm(s.benchCfg.Algorithm),
		Seed:      s.benchCfg.Seed,
		Verify:    s.benchCfg.Verify,
	}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err)
			return
		}
	}
	if req.Size > maxBenchSize {
		badRequest(c, errors.New("size must not exceed "+strconv.Itoa(maxBenchSize)))
		return
	}

	runner := bench.NewRunner(req.Size, req.K, req.Trials, req.Algorithm, req.Seed)
	runner.Threshold = s.benchCfg.Threshold
	runner.Verify = req.Verify

	report, err := runner.Run(c.Request.Context())
	if err != nil {
		badRequest(c, err)
		return
	}
	s.SetLatest(report)
	c.JSON(http.StatusOK, report)
}
