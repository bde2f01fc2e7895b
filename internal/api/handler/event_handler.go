package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/core/ports"
)

// EventDispatcher is the interface the handler uses to enqueue call events.
type EventDispatcher interface {
	Enqueue(event ports.CallEventInput)
	EnqueueBatch(events []ports.CallEventInput)
}

// EventHandler handles dialer-integration call event ingestion.
type EventHandler struct {
	dispatcher EventDispatcher
}

// NewEventHandler creates an EventHandler backed by the given dispatcher.
func NewEventHandler(dispatcher EventDispatcher) *EventHandler {
	return &EventHandler{dispatcher: dispatcher}
}

// Receive handles POST /v1/events — enqueues a single call event, returns 202.
//
// @Summary      Ingest a single call event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      callEventRequest  true  "Call event"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/events [post]
func (h *EventHandler) Receive(c echo.Context) error {
	var req callEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	h.dispatcher.Enqueue(toEventInput(req))
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "event accepted"})
}

// ReceiveBatch handles POST /v1/events/batch — enqueues a batch of call
// events, returns 202.
//
// @Summary      Ingest a batch of call events
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      []callEventRequest  true  "Array of call events"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/events/batch [post]
func (h *EventHandler) ReceiveBatch(c echo.Context) error {
	var reqs []callEventRequest
	if err := c.Bind(&reqs); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if len(reqs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "batch cannot be empty")
	}

	inputs := make([]ports.CallEventInput, 0, len(reqs))
	for i, req := range reqs {
		if err := c.Validate(&req); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity,
				fmt.Sprintf("event[%d]: %s", i, err.Error()))
		}
		inputs = append(inputs, toEventInput(req))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{
		Message: "events accepted",
		Count:   len(inputs),
	})
}

// toEventInput maps the HTTP request to the service DTO.
func toEventInput(r callEventRequest) ports.CallEventInput {
	return ports.CallEventInput{
		VehicleID: r.VehicleID,
		Result:    r.Result,
		Timestamp: r.Timestamp,
		Source:    r.Source,
	}
}
