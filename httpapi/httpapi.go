// Package httpapi provides the HTTP query surface of the client and lead
// records, lead intake and tool dispatch.
package httpapi

import (
	"io"
	"math"
	"net/http"

	"github.com/effective-security/finmcp/callbacks"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/finmcp/store"
	"github.com/effective-security/finmcp/tools"
	"github.com/effective-security/xdb/pkg/flake"
	"github.com/effective-security/xlog"
	"github.com/gin-gonic/gin"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "httpapi")

// maxArgumentsSize limits the body of a tool call
const maxArgumentsSize = 1 << 20

// Handler serves the HTTP routes
type Handler struct {
	store   store.Store
	reg     *tools.Registry
	journal *callbacks.Journal
}

// New returns the handler, journal may be nil
func New(st store.Store, reg *tools.Registry, journal *callbacks.Journal) *Handler {
	return &Handler{
		store:   st,
		reg:     reg,
		journal: journal,
	}
}

// NewRouter returns the gin engine with the routes registered
func NewRouter(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	h.RegisterRoutes(&r.RouterGroup)
	return r
}

// RegisterRoutes binds the handler methods to the router group
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/clients", h.ListClients)
	r.GET("/clients/:id", h.GetClient)

	r.GET("/leads", h.ListNewLeads)
	r.GET("/leads/:contactNumber", h.GetLeadByContactNumber)
	r.POST("/leads", h.UpsertLead)

	r.GET("/tools", h.ListTools)
	r.GET("/tools/stats", h.ToolStats)
	r.GET("/tools/log", h.ToolLog)
	r.POST("/tools/:name", h.CallTool)
}

// ListClients returns the clients, most recently modified first
func (h *Handler) ListClients(c *gin.Context) {
	list, err := h.store.ListClients(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if list == nil {
		list = []*model.Client{}
	}
	c.JSON(http.StatusOK, list)
}

// GetClient returns the client by ID
func (h *Handler) GetClient(c *gin.Context) {
	client, err := h.store.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// ListNewLeads returns the leads not processed yet
func (h *Handler) ListNewLeads(c *gin.Context) {
	list, err := h.store.ListLeadsByStatus(c.Request.Context(), model.LeadStatusNew)
	if err != nil {
		h.fail(c, err)
		return
	}
	if list == nil {
		list = []*model.Lead{}
	}
	c.JSON(http.StatusOK, list)
}

// GetLeadByContactNumber returns the lead with the contact number
func (h *Handler) GetLeadByContactNumber(c *gin.Context) {
	contact := c.Param("contactNumber")
	lead, err := h.store.FindLeadByContactNumber(c.Request.Context(), contact)
	if err != nil {
		if store.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Lead not found with contact: " + contact})
			return
		}
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// LeadRequest is the body of the lead intake
type LeadRequest struct {
	ID            int64  `json:"id"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Company       string `json:"company"`
	Title         string `json:"title"`
	Type          string `json:"type"`
	Source        string `json:"source"`
	Status        string `json:"status"`
	ContactNumber string `json:"contactNumber" binding:"required"`
}

// UpsertLead stores the lead, the ID is assigned when absent
// and the status defaults to new.
func (h *Handler) UpsertLead(c *gin.Context) {
	var req LeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead: " + err.Error()})
		return
	}
	if req.ID < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lead: negative id"})
		return
	}
	if req.ID == 0 {
		req.ID = int64(flake.DefaultIDGenerator.NextID() & math.MaxInt64)
	}
	if req.Status == "" {
		req.Status = model.LeadStatusNew
	}

	lead, err := h.store.UpsertLead(c.Request.Context(), &model.Lead{
		ID:            req.ID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Company:       req.Company,
		Title:         req.Title,
		Type:          req.Type,
		Source:        req.Source,
		Status:        req.Status,
		ContactNumber: req.ContactNumber,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	logger.ContextKV(c.Request.Context(), xlog.INFO, "status", "lead_saved", "lead_id", lead.ID)
	c.JSON(http.StatusOK, lead)
}

// ToolInfo describes a tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  any    `json:"parameters,omitempty"`
}

// ListTools returns the registered tools. The format query selects
// json (default), yaml or prompt, a JSON code block of names and
// descriptions to embed in an agent prompt.
func (h *Handler) ListTools(c *gin.Context) {
	list := h.reg.List()
	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
	case "yaml":
		c.Data(http.StatusOK, "application/yaml; charset=utf-8", []byte(tools.GetDescriptionsYAML(list...)))
		return
	case "prompt":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(tools.GetDescriptions(list...)))
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported format: " + format})
		return
	}
	res := make([]ToolInfo, 0, len(list))
	for _, tool := range list {
		res = append(res, ToolInfo{
			Name:        tool.Name(),
			Description: tool.Description(),
			Parameters:  tool.Parameters(),
		})
	}
	c.JSON(http.StatusOK, res)
}

// ToolStats returns the call counters
func (h *Handler) ToolStats(c *gin.Context) {
	if h.journal == nil {
		c.JSON(http.StatusOK, callbacks.Stats{Tools: []callbacks.ToolStats{}})
		return
	}
	c.JSON(http.StatusOK, h.journal.Stats())
}

// ToolLog returns the recent tool calls, oldest first
func (h *Handler) ToolLog(c *gin.Context) {
	entries := []string{}
	if h.journal != nil {
		entries = append(entries, h.journal.Entries()...)
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

// CallTool dispatches the body as the raw tool arguments.
// Tool failures are reported in the envelope.
func (h *Handler) CallTool(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArgumentsSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read arguments"})
		return
	}
	if len(body) > maxArgumentsSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "arguments too large"})
		return
	}

	res := h.reg.Dispatch(c.Request.Context(), c.Param("name"), string(body))
	status := http.StatusOK
	if res.Failed() {
		status = statusOf(res.Error.Code)
	}
	c.JSON(status, res)
}

func (h *Handler) fail(c *gin.Context, err error) {
	if store.IsNotFound(err) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	logger.ContextKV(c.Request.Context(), xlog.ERROR,
		"status", "request_failed",
		"path", c.FullPath(),
		"err", err.Error(),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func statusOf(code string) int {
	switch code {
	case tools.CodeToolNotFound, tools.CodeNotFound:
		return http.StatusNotFound
	case tools.CodeInvalidArgument:
		return http.StatusBadRequest
	case tools.CodeTimeout:
		return http.StatusGatewayTimeout
	case tools.CodeUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
