package dto

import (
	activityDto "frontdesk/internal/domains/activity/model/dto"
	bookingDto "frontdesk/internal/domains/booking/model/dto"
	roomDto "frontdesk/internal/domains/room/model/dto"
)

// SummaryResponse is everything the dashboard shows on one page.
type SummaryResponse struct {
	Counts   roomDto.CountsResponse       `json:"counts"`
	Bookings []bookingDto.BookingResponse `json:"bookings"`
	Rooms    []roomDto.OccupancyResponse  `json:"rooms"`
	Logs     []activityDto.LogResponse    `json:"logs"`
}
