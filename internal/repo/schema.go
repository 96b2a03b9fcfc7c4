package repo

const (
	tableTrips       = "trips"
	tableTickets     = "tickets"
	tableScanRecords = "scan_records"
	tableFraudAlerts = "fraud_alerts"
)

const (
	colID                = "id"
	colStatus            = "status"
	colCompanyID         = "company_id"
	colDepartureCity     = "departure_city"
	colArrivalCity       = "arrival_city"
	colDepartureDatetime = "departure_datetime"
	colTotalSeats        = "total_seats"
	colTicketNumber      = "ticket_number"
	colTripID            = "trip_id"
	colPassengerName     = "passenger_name"
	colSeatNumber        = "seat_number"
	colTicketID          = "ticket_id"
	colAgentID           = "agent_id"
	colReason            = "reason"
	colSeverity          = "severity"
	colLatitude          = "latitude"
	colLongitude         = "longitude"
	colDeviceInfo        = "device_info"
	colIsOffline         = "is_offline"
	colScannedAt         = "scanned_at"
	colSyncedAt          = "synced_at"
	colAttempts          = "attempts"
	colCreatedAt         = "created_at"
)
