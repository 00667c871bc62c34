package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"Keel/internal/auth"
	"Keel/internal/calc/curves"
	"Keel/internal/calc/export"
	"Keel/internal/calc/hydrostatics"
	"Keel/internal/calc/importer"
	"Keel/internal/calc/report"
	"Keel/internal/calc/table"
	"Keel/internal/calc/trim"
	"Keel/internal/repo"
	"Keel/internal/vessel"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, db *sql.DB) {
	userRepo := repo.NewPostgresUserDB(db)
	vesselRepo := repo.NewPostgresVesselDB(db)

	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.AuthEnv{JWTKey: []byte(tokenKey), Repo: userRepo}
	vesselH := &vessel.Handler{Repo: vesselRepo}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.LoginHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	hydroH := &hydrostatics.Handler{}
	curvesH := &curves.Handler{}
	trimH := &trim.Handler{}
	tableH := &table.Handler{}
	reportH := &report.Handler{}
	importerH := &importer.Handler{}
	exportH := &export.Handler{}

	secureApi.HandleFunc("/tools/hydro/calc", hydroH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/table", tableH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/curves", curvesH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/curves/bonjean", curvesH.Bonjean).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/curves/plot", curvesH.Plot).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/trim", trimH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/report", reportH.Generate).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/import", importerH.Offsets).Methods("POST")
	secureApi.HandleFunc("/tools/hydro/export", exportH.Table).Methods("POST")

	secureApi.HandleFunc("/vessels", vesselH.List).Methods("GET")
	secureApi.HandleFunc("/vessels", vesselH.Create).Methods("POST")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}", vesselH.Get).Methods("GET")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}", vesselH.Update).Methods("PUT", "PATCH")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}", vesselH.Delete).Methods("DELETE")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}/geometry", vesselH.PutGeometry).Methods("PUT")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}/geometry", vesselH.GetGeometry).Methods("GET")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}/tables", vesselH.ComputeTable).Methods("POST")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}/tables", vesselH.ListTables).Methods("GET")
	secureApi.HandleFunc("/vessels/{id:[0-9]+}/tables/{tableID:[0-9]+}", vesselH.GetTable).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on the environment")
	}

	db := auth.InitDB()
	defer db.Close()
	mux := mux.NewRouter()
	HandleList(mux, db)
	handler := CORS(mux)

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":443"
	}
	server := &http.Server{
		Addr:    addr,
		Handler: handler,
	}
	log.Println("Starting server on", addr)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received, closing active connections")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
