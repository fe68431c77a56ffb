package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// RequestMetrics интерфейс регистрации метрик HTTP запросов
type RequestMetrics interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// statusRecorder перехватывает код ответа для метрик
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Metrics записывает количество и длительность HTTP запросов
// Маршрут берется из шаблона mux, чтобы не плодить метки на каждый session id
func Metrics(m RequestMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(recorder, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if template, err := current.GetPathTemplate(); err == nil {
					route = template
				}
			}

			m.ObserveRequest(r.Method, route, recorder.status, time.Since(start))
		})
	}
}
