package main

import "net/http"

func (app *application) routes() *http.ServeMux {
	mux := http.NewServeMux()

	var (
		shared = func(next http.Handler) http.Handler {
			return app.logAndTraceRequest(secureHeaders(app.crossOriginProtection(
				app.timeout(next))))
		}
		session = func(next http.Handler) http.Handler {
			return app.recoverPanic(noCache(app.sessionManager.LoadAndSave(
				app.authenticate(shared(next)))))
		}
		mustSession = func(next http.Handler) http.Handler {
			return session(app.mustAuthenticate(next))
		}
	)

	mux.Handle("POST /api/login", session(http.HandlerFunc(app.loginPOST)))
	mux.Handle("POST /api/logout", session(http.HandlerFunc(app.logoutPOST)))
	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))

	mux.Handle("GET /api/profile", mustSession(http.HandlerFunc(app.profileGET)))
	mux.Handle("POST /api/profile", mustSession(http.HandlerFunc(app.profilePOST)))

	mux.Handle("POST /api/checkins", mustSession(http.HandlerFunc(app.checkInPOST)))
	mux.Handle("POST /api/feedback", mustSession(http.HandlerFunc(app.feedbackPOST)))
	mux.Handle("POST /api/recovery", mustSession(http.HandlerFunc(app.recoveryPOST)))

	mux.Handle("POST /api/plans/{date}/generate", mustSession(http.HandlerFunc(app.planGeneratePOST)))
	mux.Handle("GET /api/plans/{date}", mustSession(http.HandlerFunc(app.planGET)))
	mux.Handle("GET /api/plans/{date}/summary", mustSession(http.HandlerFunc(app.planSummaryGET)))
	mux.Handle("POST /api/plans/{date}/select", mustSession(http.HandlerFunc(app.planSelectPOST)))

	mux.Handle("GET /api/export", mustSession(http.HandlerFunc(app.exportUserDataGET)))

	return mux
}
