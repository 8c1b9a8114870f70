package visit

import "github.com/BruksfildServices01/visit-tracker/internal/httperr"

var (
	ErrInvalidDay       = httperr.ErrBusiness("invalid_day")
	ErrInvalidClient    = httperr.ErrBusiness("invalid_client")
	ErrClientTooLong    = httperr.ErrBusiness("client_too_long")
	ErrInvalidClientID  = httperr.ErrBusiness("invalid_client_id")
	ErrInvalidPartition = httperr.ErrBusiness("invalid_partition")
	ErrClientNotFound   = httperr.ErrBusiness("client_not_found")
	ErrSubscription     = httperr.ErrBusiness("subscription_failed")
)
