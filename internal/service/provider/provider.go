package provider

import (
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

const (
	submitTimeout = 10 * time.Second
	purgeToken    = "123"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type paymentProviderService struct {
	baseUrl string
	client  *fasthttp.Client
}

type IPaymentProviderService interface {
	GetHealth() (*ServiceHealthResponse, error)
	PostPayment(correlationId string, amount float64, requestedAt time.Time) error
	Purge() error
}

func NewPaymentProviderService(baseUrl string) IPaymentProviderService {
	client := &fasthttp.Client{
		MaxConnsPerHost: 512,
	}
	return &paymentProviderService{baseUrl, client}
}

func (p *paymentProviderService) GetHealth() (*ServiceHealthResponse, error) {
	statusCode, body, err := p.client.Get(nil, fmt.Sprintf("%s/payments/service-health", p.baseUrl))
	if err != nil {
		return nil, err
	}
	if statusCode != fasthttp.StatusOK {
		return nil, fmt.Errorf("couldn't get processor health. Returned status code: %d", statusCode)
	}

	response := new(ServiceHealthResponse)
	err = json.Unmarshal(body, response)
	return response, err
}

func (p *paymentProviderService) PostPayment(correlationId string, amount float64, requestedAt time.Time) error {
	reqBody := map[string]any{
		"correlationId": correlationId,
		"amount":        amount,
		"requestedAt":   requestedAt.UTC().Format(time.RFC3339),
	}

	reqBodyStr, err := json.Marshal(reqBody)
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.SetRequestURI(fmt.Sprintf("%s/payments", p.baseUrl))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(reqBodyStr)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := p.client.DoTimeout(req, resp, submitTimeout); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	statusCode := resp.StatusCode()
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	if statusCode == fasthttp.StatusUnprocessableEntity {
		return fmt.Errorf("%w: correlation id %s", ErrDuplicate, correlationId)
	}
	return fmt.Errorf("%w: status code %d", ErrUnavailable, statusCode)
}

func (p *paymentProviderService) Purge() error {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	req.SetRequestURI(fmt.Sprintf("%s/admin/purge-payments", p.baseUrl))
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.Set("X-Rinha-Token", purgeToken)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := p.client.DoTimeout(req, resp, submitTimeout); err != nil {
		log.Debug().Err(err).Str("baseUrl", p.baseUrl).Msg("purge request failed")
		return err
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return fmt.Errorf("purge returned status code %d", resp.StatusCode())
	}
	return nil
}
