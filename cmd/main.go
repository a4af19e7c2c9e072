package main

import (
	"fmt"
	"net/http"

	"github.com/AppIpe/api-imovel/internal/aluguel"
	"github.com/AppIpe/api-imovel/internal/arquivo"
	"github.com/AppIpe/api-imovel/internal/auth"
	"github.com/AppIpe/api-imovel/internal/condominio"
	"github.com/AppIpe/api-imovel/internal/config"
	"github.com/AppIpe/api-imovel/internal/configuracao"
	"github.com/AppIpe/api-imovel/internal/dashboard"
	"github.com/AppIpe/api-imovel/internal/imovel"
	"github.com/AppIpe/api-imovel/internal/middleware"
	"github.com/AppIpe/api-imovel/internal/parcela"
	"github.com/AppIpe/api-imovel/internal/parte"
	"github.com/AppIpe/api-imovel/internal/usuario"
	"github.com/AppIpe/api-imovel/internal/utils/db"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Erro ao carregar configuração", zap.Error(err))
	}

	conn, err := db.Conectar(cfg)
	if err != nil {
		logger.Fatal("Erro ao conectar no banco", zap.Error(err))
	}

	// AutoMigrate para todos os modelos
	if err := conn.AutoMigrate(
		&usuario.Usuario{},
		&parte.Parte{},
		&imovel.Imovel{},
		&parcela.Parcela{},
		&aluguel.Aluguel{},
		&condominio.Condominio{},
		&arquivo.Arquivo{},
		&configuracao.Configuracao{},
	); err != nil {
		logger.Fatal("Erro no AutoMigrate", zap.Error(err))
	}

	store, err := arquivo.NewStorage(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("Erro ao preparar diretório de uploads", zap.Error(err))
	}

	if cfg.SeedDemo {
		if err := configuracao.SeedDemo(conn); err != nil {
			logger.Fatal("Erro ao carregar dados de demonstração", zap.Error(err))
		}
	}

	// Handlers
	usuarioHandler := usuario.NewHandler(conn)
	configuracaoHandler := configuracao.NewHandler(conn)
	imovelHandler := imovel.NewHandler(conn, store)
	parteHandler := parte.NewHandler(conn, store)
	parcelaHandler := parcela.NewHandler(conn, store)
	aluguelHandler := aluguel.NewHandler(conn, store)
	condominioHandler := condominio.NewHandler(conn, store)
	arquivoHandler := arquivo.NewHandler(conn, store)
	dashboardHandler := dashboard.NewHandler(conn)

	// Router
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	// Rotas abertas
	api.HandleFunc("/auth/login", usuarioHandler.Login).Methods("POST")
	api.HandleFunc("/configuracao/status", configuracaoHandler.Status).Methods("GET")
	api.HandleFunc("/configuracao/wizard", configuracaoHandler.Wizard).Methods("POST")

	// Rotas autenticadas
	priv := api.NewRoute().Subrouter()
	priv.Use(auth.MiddlewareAutenticacao)

	proprietario := func(h http.HandlerFunc) http.Handler {
		return auth.SomenteProprietario(h)
	}

	priv.HandleFunc("/auth/me", usuarioHandler.Me).Methods("GET")
	priv.HandleFunc("/auth/senha", usuarioHandler.AlterarSenha).Methods("PATCH")

	// Imóvel
	priv.HandleFunc("/imovel", imovelHandler.Buscar).Methods("GET")
	priv.Handle("/imovel", proprietario(imovelHandler.Criar)).Methods("POST")
	priv.Handle("/imovel", proprietario(imovelHandler.Atualizar)).Methods("PATCH")

	// Partes
	priv.HandleFunc("/partes", parteHandler.Listar).Methods("GET")
	priv.Handle("/partes", proprietario(parteHandler.Criar)).Methods("POST")
	priv.Handle("/partes/{id}", proprietario(parteHandler.Atualizar)).Methods("PATCH")
	priv.Handle("/partes/{id}", proprietario(parteHandler.Deletar)).Methods("DELETE")

	// Parcelas
	priv.HandleFunc("/parcelas", parcelaHandler.Listar).Methods("GET")
	priv.HandleFunc("/parcelas", parcelaHandler.Criar).Methods("POST")
	priv.HandleFunc("/parcelas/{id}/status", parcelaHandler.AtualizarStatus).Methods("PATCH")
	priv.Handle("/parcelas/{id}", proprietario(parcelaHandler.Deletar)).Methods("DELETE")

	// Aluguéis
	priv.HandleFunc("/alugueis", aluguelHandler.Listar).Methods("GET")
	priv.HandleFunc("/alugueis", aluguelHandler.Criar).Methods("POST")
	priv.HandleFunc("/alugueis/{id}/status", aluguelHandler.AtualizarStatus).Methods("PATCH")
	priv.Handle("/alugueis/{id}", proprietario(aluguelHandler.Deletar)).Methods("DELETE")

	// Condomínios
	priv.HandleFunc("/condominios", condominioHandler.Listar).Methods("GET")
	priv.HandleFunc("/condominios", condominioHandler.Criar).Methods("POST")
	priv.HandleFunc("/condominios/{id}/status", condominioHandler.AtualizarStatus).Methods("PATCH")
	priv.Handle("/condominios/{id}", proprietario(condominioHandler.Deletar)).Methods("DELETE")

	// Arquivos
	priv.HandleFunc("/arquivos", arquivoHandler.ListarPorEntidade).Methods("GET")
	priv.HandleFunc("/arquivos/{id}/download", arquivoHandler.Download).Methods("GET")
	priv.Handle("/arquivos/{id}", proprietario(arquivoHandler.Deletar)).Methods("DELETE")

	// Dashboard
	priv.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: false,
	})

	handler := middleware.Recuperar(logger)(middleware.Logger(logger)(c.Handler(r)))

	endereco := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Servidor iniciado", zap.String("endereco", endereco))
	if err := http.ListenAndServe(endereco, handler); err != nil {
		logger.Fatal("Servidor encerrou com erro", zap.Error(err))
	}
}
