package application

import "expvar"

// Served on /api/debug/vars.
var (
	usersCreated   = expvar.NewInt("users_created")
	usersDeleted   = expvar.NewInt("users_deleted")
	ordersAppended = expvar.NewInt("orders_appended")
)
