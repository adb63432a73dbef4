package payment

import (
	"context"
	"errors"

	"github.com/murali55525/erode-local-sub000/models"
	"github.com/murali55525/erode-local-sub000/services"
)

var errGatewayDisabled = errors.New("card payments are not configured")

type disabledGateway struct{}

// Disabled returns a gateway that rejects card payments. Used when the
// PAYMENT_* environment is absent so cash-on-delivery checkout still works.
func Disabled() services.PaymentGateway { return disabledGateway{} }

func (disabledGateway) CreateIntent(context.Context, float64, string, string, models.ShippingInfo) (services.PaymentIntent, error) {
	return services.PaymentIntent{}, errGatewayDisabled
}

func (disabledGateway) Verify(context.Context, string) (bool, error) {
	return false, errGatewayDisabled
}
