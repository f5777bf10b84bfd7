// Package events publica eventos de dominio a un topic Event Grid (o
// compatible) en modo best-effort: un fallo de entrega se registra y se
// descarta, nunca revierte la operación de dominio ya confirmada.
package events

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cn2-g7/usuarios-api/internal/application/dto"
	"github.com/cn2-g7/usuarios-api/internal/application/usecase"
	"github.com/cn2-g7/usuarios-api/internal/domain/entity"
	"github.com/cn2-g7/usuarios-api/pkg/config"
	"github.com/cn2-g7/usuarios-api/pkg/logger"
)

var _ usecase.EventPublisher = (*Publisher)(nil)

// Publisher emite sobres de evento vía HTTP POST con clave compartida.
// El cliente HTTP es un singleton por proceso, seguro para uso concurrente.
type Publisher struct {
	endpoint  string
	accessKey string
	client    *http.Client
	log       *logger.Logger
}

// NewPublisher construye el publicador con timeout de 10 segundos.
func NewPublisher(cfg config.EventsConfig, log *logger.Logger) *Publisher {
	return &Publisher{
		endpoint:  cfg.Endpoint,
		accessKey: cfg.AccessKey,
		client:    &http.Client{Timeout: 10 * time.Second},
		log:       log,
	}
}

// PublishUserCreated emite el usuario recién creado (con password ya hasheado).
func (p *Publisher) PublishUserCreated(u *entity.Usuario) {
	p.publish("UserCreated", dto.DesdeEntidad(u))
}

// PublishUserUpdated emite el usuario resultante de la fusión.
func (p *Publisher) PublishUserUpdated(u *entity.Usuario) {
	p.publish("UserUpdated", dto.DesdeEntidad(u))
}

// PublishUserDeleted emite solo el ID eliminado.
func (p *Publisher) PublishUserDeleted(id int64) {
	p.publish("UserDeleted", map[string]int64{"id": id})
}

// PublishUserRetrieved emite el usuario leído (lecturas individuales y listados).
func (p *Publisher) PublishUserRetrieved(u *entity.Usuario) {
	p.publish("UserRetrieved", dto.DesdeEntidad(u))
}

// publish arma el sobre y lo envía como array JSON de un solo elemento.
func (p *Publisher) publish(tipo string, data any) {
	if p.endpoint == "" {
		p.log.Debug().Str("eventType", tipo).Msg("sink de eventos no configurado, evento descartado")
		return
	}

	sobre := map[string]any{
		"id":          uuid.NewString(),
		"subject":     "/" + strings.ToLower(tipo),
		"eventType":   "com.function.usuarios." + tipo,
		"data":        data,
		"eventTime":   time.Now().Format(time.RFC3339),
		"dataVersion": "1.0",
		"topic":       "",
	}
	cuerpo, err := json.Marshal([]any{sobre})
	if err != nil {
		p.log.Error().Err(err).Str("eventType", tipo).Msg("error al serializar evento")
		return
	}
	p.log.Debug().Str("eventType", tipo).RawJSON("evento", cuerpo).Msg("enviando evento")

	req, err := http.NewRequest(http.MethodPost, p.endpoint, bytes.NewReader(cuerpo))
	if err != nil {
		p.log.Error().Err(err).Str("eventType", tipo).Msg("error al construir la solicitud de evento")
		return
	}
	req.Header.Set("aeg-sas-key", p.accessKey)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	resp, err := p.client.Do(req)
	if err != nil {
		p.log.Error().Err(err).Str("eventType", tipo).Msg("error al publicar evento")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.log.Error().
			Int("status", resp.StatusCode).
			Str("eventType", tipo).
			Str("body", string(body)).
			Msg("error al publicar evento")
		return
	}
	p.log.Debug().Int("status", resp.StatusCode).Str("eventType", tipo).Msg("evento publicado exitosamente")
}
