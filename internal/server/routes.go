package server

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the single route table. The source system re-registered
// several of these paths across revisions; here each path+method appears
// exactly once. Paths like /VendorsProducts and /allPayments are kept as-is
// since clients depend on them.
func (s Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.loggingMw, s.maxBytesMw)

	r.HandleFunc("/", s.health()).Methods(http.MethodGet)

	r.HandleFunc("/products", s.productGetAll()).Methods(http.MethodGet)
	r.HandleFunc("/products/approved", s.productGetApproved()).Methods(http.MethodGet)
	r.HandleFunc("/products/status/{productID}", s.authGate(s.productStatusUpdate())).Methods(http.MethodPatch)
	r.HandleFunc("/products/reject/{productID}", s.authGate(s.productReject())).Methods(http.MethodPatch)
	r.HandleFunc("/products/{productID}", s.productGetOne()).Methods(http.MethodGet)
	r.HandleFunc("/products/{productID}", s.authGate(s.productUpdate())).Methods(http.MethodPut)
	r.HandleFunc("/products/{productID}", s.authGate(s.productDelete())).Methods(http.MethodDelete)
	r.HandleFunc("/add-products", s.authGate(s.productAdd())).Methods(http.MethodPost)
	r.HandleFunc("/VendorsProducts", s.authGate(s.productGetByVendor())).Methods(http.MethodGet)

	r.HandleFunc("/reviews/{productID}", s.reviewGetByProduct()).Methods(http.MethodGet)
	r.HandleFunc("/reviews", s.authGate(s.reviewAdd())).Methods(http.MethodPost)

	r.HandleFunc("/user", s.userUpsert()).Methods(http.MethodPost)
	r.HandleFunc("/user/role/update/{email}", s.authGate(s.userRoleUpdate())).Methods(http.MethodPatch)
	r.HandleFunc("/user/role/{email}", s.authGate(s.userRoleGet())).Methods(http.MethodGet)
	r.HandleFunc("/all-users", s.authGate(s.userGetAll())).Methods(http.MethodGet)

	r.HandleFunc("/add-advertisements", s.authGate(s.advertAdd())).Methods(http.MethodPost)
	r.HandleFunc("/advertisements", s.advertGetAll()).Methods(http.MethodGet)
	r.HandleFunc("/advertisements/{advertID}", s.advertGetOne()).Methods(http.MethodGet)
	r.HandleFunc("/advertisements/{advertID}", s.authGate(s.advertStatusUpdate())).Methods(http.MethodPatch)
	r.HandleFunc("/advertisements/{advertID}", s.authGate(s.advertDelete())).Methods(http.MethodDelete)

	r.HandleFunc("/create-payment-intent", s.authGate(s.paymentIntentCreate())).Methods(http.MethodPost)
	r.HandleFunc("/payments", s.authGate(s.paymentRecord())).Methods(http.MethodPost)
	r.HandleFunc("/payments", s.authGate(s.paymentGetForUser())).Methods(http.MethodGet)
	r.HandleFunc("/allPayments", s.authGate(s.paymentGetAll())).Methods(http.MethodGet)

	r.HandleFunc("/watchlist", s.authGate(s.watchlistAdd())).Methods(http.MethodPost)

	return r
}

func (s Server) health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Bazario server is running!"))
	}
}
