package response

type DashboardResponse struct {
	TotalMovies    int64             `json:"total_movies"`
	ActiveMovies   int64             `json:"active_movies"`
	UpcomingMovies int64             `json:"upcoming_movies"`
	TotalBookings  int64             `json:"total_bookings"`
	RecentBookings int64             `json:"recent_bookings"`
	TotalRevenue   float64           `json:"total_revenue"`
	LatestBookings []BookingResponse `json:"latest_bookings"`
}
