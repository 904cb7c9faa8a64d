package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/sepolpinturas/obras_backend/internal/core/ports/services"
	"github.com/sepolpinturas/obras_backend/internal/dto"
	"github.com/sepolpinturas/obras_backend/internal/middleware"
)

// catalogHandler handles HTTP requests for the reference data: clients,
// workers, jobs and the service catalog.
type catalogHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

func newCatalogHandler(cs portssvc.CatalogSvcFacade) *catalogHandler {
	return &catalogHandler{catalogService: cs}
}

// registerCatalogRoutes registers the reference data CRUD routes.
func registerCatalogRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCatalogHandler(catalogService)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("/:id", h.getClient)
		clients.GET("", h.listClients)
		clients.PUT("/:id", h.updateClient)
	}

	workers := rg.Group("/workers")
	{
		workers.POST("", h.createWorker)
		workers.GET("/:id", h.getWorker)
		workers.GET("", h.listWorkers)
		workers.PUT("/:id", h.updateWorker)
	}

	jobs := rg.Group("/jobs")
	{
		jobs.POST("", h.createJob)
		jobs.GET("/:id", h.getJob)
		jobs.GET("", h.listJobs)
		jobs.PUT("/:id", h.updateJob)
	}

	services := rg.Group("/services")
	{
		services.POST("", h.createService)
		services.GET("/:id", h.getService)
		services.GET("", h.listServices)
		services.PUT("/:id", h.updateService)
	}
}

// createClient godoc
// @Summary Register a client
// @Tags catalog
// @Accept json
// @Produce json
// @Param client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} map[string]string
// @Router /clients [post]
func (h *catalogHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.catalogService.CreateClient(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create client")
		return
	}
	logger.Info("Client created", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

func (h *catalogHandler) getClient(c *gin.Context) {
	client, err := h.catalogService.GetClient(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

func (h *catalogHandler) listClients(c *gin.Context) {
	limit, nextToken := listParams(c)
	clients, token, err := h.catalogService.ListClients(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list clients")
		return
	}
	responses := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		responses[i] = dto.ToClientResponse(&clients[i])
	}
	c.JSON(http.StatusOK, gin.H{"clients": responses, "nextToken": token})
}

func (h *catalogHandler) updateClient(c *gin.Context) {
	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	client, err := h.catalogService.UpdateClient(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// createWorker godoc
// @Summary Register a worker
// @Tags catalog
// @Accept json
// @Produce json
// @Param worker body dto.CreateWorkerRequest true "Worker details"
// @Success 201 {object} dto.WorkerResponse
// @Failure 400 {object} map[string]string
// @Router /workers [post]
func (h *catalogHandler) createWorker(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	worker, err := h.catalogService.CreateWorker(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create worker")
		return
	}
	logger.Info("Worker created", slog.String("worker_id", worker.WorkerID))
	c.JSON(http.StatusCreated, dto.ToWorkerResponse(worker))
}

func (h *catalogHandler) getWorker(c *gin.Context) {
	worker, err := h.catalogService.GetWorker(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve worker")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

func (h *catalogHandler) listWorkers(c *gin.Context) {
	limit, nextToken := listParams(c)
	workers, token, err := h.catalogService.ListWorkers(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list workers")
		return
	}
	responses := make([]dto.WorkerResponse, len(workers))
	for i := range workers {
		responses[i] = dto.ToWorkerResponse(&workers[i])
	}
	c.JSON(http.StatusOK, gin.H{"workers": responses, "nextToken": token})
}

func (h *catalogHandler) updateWorker(c *gin.Context) {
	var req dto.UpdateWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	worker, err := h.catalogService.UpdateWorker(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update worker")
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkerResponse(worker))
}

// createJob godoc
// @Summary Open a job for a client
// @Tags catalog
// @Accept json
// @Produce json
// @Param job body dto.CreateJobRequest true "Job details"
// @Success 201 {object} dto.JobResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string "Client not found"
// @Router /jobs [post]
func (h *catalogHandler) createJob(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	job, err := h.catalogService.CreateJob(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create job")
		return
	}
	logger.Info("Job created", slog.String("job_id", job.JobID))
	c.JSON(http.StatusCreated, dto.ToJobResponse(job))
}

func (h *catalogHandler) getJob(c *gin.Context) {
	job, err := h.catalogService.GetJob(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve job")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

func (h *catalogHandler) listJobs(c *gin.Context) {
	limit, nextToken := listParams(c)
	jobs, token, err := h.catalogService.ListJobs(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list jobs")
		return
	}
	responses := make([]dto.JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = dto.ToJobResponse(&jobs[i])
	}
	c.JSON(http.StatusOK, gin.H{"jobs": responses, "nextToken": token})
}

func (h *catalogHandler) updateJob(c *gin.Context) {
	var req dto.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	job, err := h.catalogService.UpdateJob(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update job")
		return
	}
	c.JSON(http.StatusOK, dto.ToJobResponse(job))
}

// createService godoc
// @Summary Add a service to the catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Param service body dto.CreateServiceRequest true "Service details"
// @Success 201 {object} dto.ServiceResponse
// @Failure 400 {object} map[string]string
// @Router /services [post]
func (h *catalogHandler) createService(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	service, err := h.catalogService.CreateService(c.Request.Context(), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to create service")
		return
	}
	logger.Info("Catalog service created", slog.String("service_id", service.ServiceID))
	c.JSON(http.StatusCreated, dto.ToServiceResponse(service))
}

func (h *catalogHandler) getService(c *gin.Context) {
	service, err := h.catalogService.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve service")
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}

func (h *catalogHandler) listServices(c *gin.Context) {
	limit, nextToken := listParams(c)
	services, token, err := h.catalogService.ListServices(c.Request.Context(), limit, nextToken)
	if err != nil {
		respondServiceError(c, err, "Failed to list services")
		return
	}
	responses := make([]dto.ServiceResponse, len(services))
	for i := range services {
		responses[i] = dto.ToServiceResponse(&services[i])
	}
	c.JSON(http.StatusOK, gin.H{"services": responses, "nextToken": token})
}

func (h *catalogHandler) updateService(c *gin.Context) {
	var req dto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	service, err := h.catalogService.UpdateService(c.Request.Context(), c.Param("id"), req, actorID)
	if err != nil {
		respondServiceError(c, err, "Failed to update service")
		return
	}
	c.JSON(http.StatusOK, dto.ToServiceResponse(service))
}
