package payments

import (
	"log"
	"pix_checkout/internal/config"
	"pix_checkout/internal/domain/errs"
	"pix_checkout/internal/usecase/interfaces"
)

// NewGateway picks the gateway implementation from configuration.
func NewGateway(cfg config.Gateway) (interfaces.IPaymentGateway, error) {
	if cfg.Mock {
		return NewMockGateway(cfg.MockPaidAfter), nil
	}

	switch cfg.Provider {
	case config.ProviderPushinPay:
		gw, err := NewPushinPayGateway(PushinPayOptions{
			BaseURL:     cfg.BaseURL,
			Token:       cfg.Token,
			Variant:     cfg.Variant,
			ChargePath:  cfg.ChargePath,
			StatusPath:  cfg.StatusPath,
			CallbackURL: cfg.CallbackURL,
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, err
		}
		return gw, nil
	case config.ProviderMercadoPago:
		gw, err := NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.MercadoPagoPayerEmail, cfg.CallbackURL)
		if err != nil {
			return nil, err
		}
		return gw, nil
	}

	log.Printf("[charge][gateway] unknown provider provider=%q", cfg.Provider)
	return nil, errs.NewConfigError("PIX_GATEWAY_PROVIDER", "unknown payment provider "+cfg.Provider)
}
