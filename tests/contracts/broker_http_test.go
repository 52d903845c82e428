package contracts

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davicafu/brokerlive/internal/broker/application"
	"github.com/davicafu/brokerlive/internal/broker/domain"
	brokerHttp "github.com/davicafu/brokerlive/internal/broker/infra/inbound/http"
	"github.com/davicafu/brokerlive/internal/broker/infra/outbound/memory"
	infraEvents "github.com/davicafu/brokerlive/internal/infra/events"
	"github.com/davicafu/brokerlive/tests/mocks"
)

func newRouter() (*gin.Engine, *application.BrokerService, *infraEvents.InMemoryEventBus) {
	gin.SetMode(gin.TestMode)

	repo := memory.NewBrokerRepoMemory()
	bus := infraEvents.NewInMemoryEventBus(16, zap.NewNop())
	service := application.NewBrokerService(repo, mocks.NewDummyCache(), bus, zap.NewNop())

	router := gin.New()
	brokerHttp.RegisterBrokerRoutes(router,
		brokerHttp.NewBrokerHandler(service),
		brokerHttp.NewStreamHandler(service, bus, zap.NewNop()),
	)
	return router, service, bus
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func anaPayload() map[string]interface{} {
	return map[string]interface{}{
		"name":   "Ana Silva",
		"email":  "a@x.com",
		"phone":  "11999990000",
		"region": "Centro",
	}
}

func TestCreateBroker_HTTPContract(t *testing.T) {
	router, _, _ := newRouter()

	rec := performJSON(t, router, http.MethodPost, "/api/brokers", anaPayload())
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Broker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Ana Silva", created.Name)
	assert.Equal(t, domain.RegionCentro, created.Region)
	assert.False(t, created.IsOnline)

	// el roster ahora contiene exactamente ese corretor
	recList := performJSON(t, router, http.MethodGet, "/api/brokers", nil)
	require.Equal(t, http.StatusOK, recList.Code)

	var list []domain.Broker
	require.NoError(t, json.Unmarshal(recList.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
}

func TestCreateBroker_ValidationFailures(t *testing.T) {
	router, service, _ := newRouter()

	cases := map[string]map[string]interface{}{
		"sin nombre": {
			"email": "a@x.com", "phone": "11999990000", "region": "Centro",
		},
		"email inválido": {
			"name": "Ana", "email": "no-es-email", "phone": "11999990000",
		},
		"región fuera del enum": {
			"name": "Ana", "email": "a@x.com", "phone": "11999990000", "region": "Copacabana",
		},
	}

	for name, payload := range cases {
		rec := performJSON(t, router, http.MethodPost, "/api/brokers", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}

	// el input inválido nunca toca el store
	list, err := service.ListBrokers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateBroker_RegionDefaults(t *testing.T) {
	router, _, _ := newRouter()

	payload := anaPayload()
	delete(payload, "region")

	rec := performJSON(t, router, http.MethodPost, "/api/brokers", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Broker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, domain.DefaultRegion, created.Region)
}

func TestGetBroker_HTTPContract(t *testing.T) {
	router, service, _ := newRouter()

	broker, err := service.CreateBroker(context.Background(), domain.BrokerInput{
		Name: "Ana", Email: "a@x.com", Phone: "1", Region: domain.RegionEnseada,
	})
	require.NoError(t, err)

	rec := performJSON(t, router, http.MethodGet, "/api/brokers/"+broker.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Broker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, broker.ID, got.ID)

	// id inexistente → 404, id mal formado → 400
	rec404 := performJSON(t, router, http.MethodGet, "/api/brokers/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec404.Code)

	rec400 := performJSON(t, router, http.MethodGet, "/api/brokers/no-es-un-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec400.Code)
}

func TestUpdateBroker_HTTPContract(t *testing.T) {
	router, service, _ := newRouter()

	broker, err := service.CreateBroker(context.Background(), domain.BrokerInput{
		Name: "Ana Silva", Email: "a@x.com", Phone: "11999990000", Region: domain.RegionCentro,
	})
	require.NoError(t, err)
	_, err = service.UpdateBrokerStatus(context.Background(), broker.ID, true)
	require.NoError(t, err)

	payload := map[string]interface{}{
		"name": "Ana S.", "email": "a@x.com", "phone": "11999990000", "region": "Enseada",
	}
	rec := performJSON(t, router, http.MethodPatch, "/api/brokers/"+broker.ID.String(), payload)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Broker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Ana S.", updated.Name)
	assert.Equal(t, domain.RegionEnseada, updated.Region)
	assert.True(t, updated.IsOnline, "el update no toca el estado online")

	recMissing := performJSON(t, router, http.MethodPatch, "/api/brokers/"+uuid.NewString(), payload)
	assert.Equal(t, http.StatusNotFound, recMissing.Code)
}

func TestUpdateBrokerStatus_HTTPContract(t *testing.T) {
	router, service, _ := newRouter()

	broker, err := service.CreateBroker(context.Background(), domain.BrokerInput{
		Name: "Ana", Email: "a@x.com", Phone: "1", Region: domain.RegionCentro,
	})
	require.NoError(t, err)

	rec := performJSON(t, router, http.MethodPatch, "/api/brokers/"+broker.ID.String()+"/status",
		map[string]interface{}{"isOnline": true})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated domain.Broker
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.True(t, updated.IsOnline)
	assert.Equal(t, "Ana", updated.Name)

	// isOnline debe ser booleano
	recBad := performJSON(t, router, http.MethodPatch, "/api/brokers/"+broker.ID.String()+"/status",
		map[string]interface{}{"isOnline": "yes"})
	assert.Equal(t, http.StatusBadRequest, recBad.Code)

	recMissing := performJSON(t, router, http.MethodPatch, "/api/brokers/"+uuid.NewString()+"/status",
		map[string]interface{}{"isOnline": false})
	assert.Equal(t, http.StatusNotFound, recMissing.Code)
}

func TestDeleteBroker_HTTPContract(t *testing.T) {
	router, service, _ := newRouter()

	broker, err := service.CreateBroker(context.Background(), domain.BrokerInput{
		Name: "Ana", Email: "a@x.com", Phone: "1", Region: domain.RegionCentro,
	})
	require.NoError(t, err)

	rec := performJSON(t, router, http.MethodDelete, "/api/brokers/"+broker.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	recGet := performJSON(t, router, http.MethodGet, "/api/brokers/"+broker.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, recGet.Code)

	recAgain := performJSON(t, router, http.MethodDelete, "/api/brokers/"+broker.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, recAgain.Code)
}

// readSSEEvent consume un frame SSE completo (hasta la línea en blanco) y
// devuelve el nombre del evento y su data concatenada.
func readSSEEvent(t *testing.T, r *bufio.Reader) (name, data string) {
	t.Helper()
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if name != "" || data != "" {
				return name, data
			}
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data += strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		}
	}
}

// El stream SSE entrega el snapshot inicial y después los cambios en orden.
func TestStream_SSEContract(t *testing.T) {
	router, service, bus := newRouter()

	broker, err := service.CreateBroker(context.Background(), domain.BrokerInput{
		Name: "Ana", Email: "a@x.com", Phone: "1", Region: domain.RegionCentro,
	})
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)

	// primero llega el snapshot con el roster completo
	name, data := readSSEEvent(t, reader)
	assert.Equal(t, "sync", name)
	assert.Contains(t, data, broker.ID.String())

	// mutar mientras el stream está abierto
	_, err = service.UpdateBrokerStatus(context.Background(), broker.ID, true)
	require.NoError(t, err)

	name, data = readSSEEvent(t, reader)
	assert.Equal(t, domain.StatusChanged, name)
	assert.Contains(t, data, broker.ID.String())
	assert.Contains(t, data, `"isOnline":true`)

	// al cortar la conexión, el observador se da de baja
	cancel()
	require.Eventually(t, func() bool { return bus.Subscribers() == 0 },
		2*time.Second, 10*time.Millisecond)
}
