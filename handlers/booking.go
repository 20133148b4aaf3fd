package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"eventkompass/middleware"
	"eventkompass/models"
	"eventkompass/services/booking"
	"eventkompass/services/discovery"
	"eventkompass/services/session"
	"eventkompass/services/share"
	"eventkompass/utils"
)

// ProfileResponse is the profile view.
type ProfileResponse struct {
	User     models.User        `json:"user"`
	Bookings []models.EventItem `json:"bookings"`
}

// BookingResponse reports the stored event and whether it was new.
type BookingResponse struct {
	Event models.EventItem `json:"event"`
	Added bool             `json:"added"`
}

// ShareQuery describes the event to share.
type ShareQuery struct {
	Category string `form:"category" binding:"omitempty,category"`
	Title    string `form:"title" binding:"required"`
	URL      string `form:"url" binding:"omitempty,url"`
}

type BookingHandler struct {
	Discovery *discovery.Service
	Sessions  *session.Service
}

func NewBookingHandler(svc *discovery.Service) *BookingHandler {
	return &BookingHandler{Discovery: svc, Sessions: svc.Sessions}
}

func (h *BookingHandler) state(c *gin.Context) (session.State, bool) {
	st, err := h.Sessions.Get(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return session.State{}, false
	}
	return st, true
}

func bookingList(st session.State) []models.EventItem {
	if st.Bookings == nil || !st.SignedIn() {
		return []models.EventItem{}
	}
	return st.Bookings.List()
}

// ProfileHandler returns the signed-in user with their bookings.
func (h *BookingHandler) ProfileHandler(c *gin.Context) {
	st, ok := h.state(c)
	if !ok {
		return
	}
	if !st.SignedIn() {
		respondError(c, st.Language, booking.ErrLoginRequired)
		return
	}
	c.JSON(http.StatusOK, ProfileResponse{User: *st.User, Bookings: bookingList(st)})
}

// ListBookingsHandler returns the bookings, most recent first. Without a user
// the list is empty.
func (h *BookingHandler) ListBookingsHandler(c *gin.Context) {
	st, ok := h.state(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, bookingList(st))
}

// AddBookingHandler books an explicit event or the current discovery result.
func (h *BookingHandler) AddBookingHandler(c *gin.Context) {
	var req discovery.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid booking", err.Error())
		return
	}

	ev, added, err := h.Discovery.Book(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		lang := models.LanguageDE
		if st, getErr := h.Sessions.Get(c.Request.Context(), middleware.SessionID(c)); getErr == nil {
			lang = st.Language
		}
		respondError(c, lang, err)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, BookingResponse{Event: ev, Added: added})
}

// DeleteBookingHandler cancels a booking by id.
func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	removed, err := h.Discovery.Cancel(c.Request.Context(), middleware.SessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, models.LanguageDE, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "removed": removed})
}

// CalendarHandler exports the bookings as an iCalendar file.
func (h *BookingHandler) CalendarHandler(c *gin.Context) {
	st, ok := h.state(c)
	if !ok {
		return
	}
	body := booking.ExportCalendar("EventKompass", bookingList(st), time.Now())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "eventkompass.ics"))
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(body))
}

// ShareHandler returns the share links of an event.
func (h *BookingHandler) ShareHandler(c *gin.Context) {
	var q ShareQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid share request", err.Error())
		return
	}
	c.JSON(http.StatusOK, share.Links(models.ParseCategory(q.Category), q.Title, q.URL))
}
