package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/paymentrails/paymentrails-go/pkg/paymentrails"
	"github.com/shopspring/decimal"
)

// fakeAPI is an in-memory stand-in for the PaymentRails API, enough to drive the
// resource clients through realistic lifecycles.
type fakeAPI struct {
	mu sync.Mutex

	nextID     int
	recipients []*paymentrails.Recipient
	accounts   map[string][]*paymentrails.RecipientAccount
	batches    []*paymentrails.Batch
	payments   map[string][]*paymentrails.Payment

	// requests records "METHOD path" for every request received.
	requests []string
	// authorize, when set, rejects requests it returns false for with 401.
	authorize func(*http.Request, []byte) bool
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	t.Helper()

	api := &fakeAPI{
		accounts: make(map[string][]*paymentrails.RecipientAccount),
		payments: make(map[string][]*paymentrails.Payment),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/recipients", api.createRecipient)
	mux.HandleFunc("GET /v1/recipients", api.listRecipients)
	mux.HandleFunc("GET /v1/recipients/{id}", api.getRecipient)
	mux.HandleFunc("PATCH /v1/recipients/{id}", api.updateRecipient)
	mux.HandleFunc("DELETE /v1/recipients/{id}", api.deleteRecipient)
	mux.HandleFunc("GET /v1/recipients/{id}/payments", api.listRecipientPayments)
	mux.HandleFunc("POST /v1/recipients/{id}/accounts", api.createAccount)
	mux.HandleFunc("GET /v1/recipients/{id}/accounts", api.listAccounts)
	mux.HandleFunc("GET /v1/recipients/{id}/accounts/{accountID}", api.getAccount)
	mux.HandleFunc("PATCH /v1/recipients/{id}/accounts/{accountID}", api.updateAccount)
	mux.HandleFunc("DELETE /v1/recipients/{id}/accounts/{accountID}", api.deleteAccount)
	mux.HandleFunc("POST /v1/batches", api.createBatch)
	mux.HandleFunc("GET /v1/batches", api.listBatches)
	mux.HandleFunc("GET /v1/batches/{id}", api.getBatch)
	mux.HandleFunc("PATCH /v1/batches/{id}", api.updateBatch)
	mux.HandleFunc("DELETE /v1/batches/{id}", api.deleteBatch)
	mux.HandleFunc("GET /v1/batches/{id}/summary", api.batchSummary)
	mux.HandleFunc("POST /v1/batches/{id}/generate-quote", api.generateQuote)
	mux.HandleFunc("POST /v1/batches/{id}/start-processing", api.startProcessing)
	mux.HandleFunc("POST /v1/batches/{id}/payments", api.createPayment)
	mux.HandleFunc("GET /v1/batches/{id}/payments", api.listPayments)
	mux.HandleFunc("GET /v1/batches/{id}/payments/{paymentID}", api.getPayment)
	mux.HandleFunc("PATCH /v1/batches/{id}/payments/{paymentID}", api.updatePayment)
	mux.HandleFunc("DELETE /v1/batches/{id}/payments/{paymentID}", api.deletePayment)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := readBody(request)

		api.mu.Lock()
		api.requests = append(api.requests, request.Method+" "+request.URL.Path)
		authorize := api.authorize
		api.mu.Unlock()

		if authorize != nil && !authorize(request, body) {
			writeErrors(writer, http.StatusUnauthorized, "invalid_signature", "", "Invalid request signature")

			return
		}

		request.Body = newBody(body)
		mux.ServeHTTP(writer, request)
	}))
	t.Cleanup(server.Close)

	return api, server
}

func (f *fakeAPI) id(prefix string) string {
	f.nextID++

	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeAPI) findRecipient(id string) *paymentrails.Recipient {
	for _, recipient := range f.recipients {
		if recipient.ID == id {
			return recipient
		}
	}

	return nil
}

func (f *fakeAPI) findBatch(id string) *paymentrails.Batch {
	for _, batch := range f.batches {
		if batch.ID == id {
			return batch
		}
	}

	return nil
}

func (f *fakeAPI) createRecipient(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.RecipientCreateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	if req.Email == "" {
		writeErrors(writer, http.StatusBadRequest, "invalid_field", "email", "Email is required")

		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := paymentrails.NewTimestamp(time.Now().UTC())
	recipient := &paymentrails.Recipient{
		ID:          f.id("R"),
		ReferenceID: req.ReferenceID,
		Type:        req.Type,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Name:        strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:       req.Email,
		Status:      paymentrails.RecipientStatusIncomplete,
		Language:    req.Language,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if req.Name != "" {
		recipient.Name = req.Name
	}

	if req.Address != nil {
		recipient.Address = &paymentrails.Address{}
		applyAddress(recipient.Address, req.Address)
	}

	f.recipients = append(f.recipients, recipient)

	writeEnvelope(writer, http.StatusOK, "recipient", recipient)
}

func (f *fakeAPI) listRecipients(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	search := strings.ToLower(request.URL.Query().Get("search"))

	var matched []paymentrails.Recipient

	for _, recipient := range f.recipients {
		if search == "" || strings.Contains(strings.ToLower(recipient.Email+" "+recipient.Name), search) {
			matched = append(matched, *recipient)
		}
	}

	writePage(writer, request, "recipients", matched)
}

func (f *fakeAPI) getRecipient(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	recipient := f.findRecipient(request.PathValue("id"))
	if recipient == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Recipient not found")

		return
	}

	found := *recipient
	for _, account := range f.accounts[recipient.ID] {
		found.Accounts = append(found.Accounts, *account)
	}

	writeEnvelope(writer, http.StatusOK, "recipient", found)
}

func (f *fakeAPI) updateRecipient(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.RecipientUpdateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	recipient := f.findRecipient(request.PathValue("id"))
	if recipient == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Recipient not found")

		return
	}

	setString(&recipient.FirstName, req.FirstName)
	setString(&recipient.LastName, req.LastName)
	setString(&recipient.Name, req.Name)
	setString(&recipient.Email, req.Email)
	setString(&recipient.ReferenceID, req.ReferenceID)
	setString(&recipient.Language, req.Language)

	if req.Type != nil {
		recipient.Type = *req.Type
	}

	if req.Address != nil {
		if recipient.Address == nil {
			recipient.Address = &paymentrails.Address{}
		}

		applyAddress(recipient.Address, req.Address)
	}

	recipient.UpdatedAt = paymentrails.NewTimestamp(time.Now().UTC())

	writeOK(writer)
}

func (f *fakeAPI) deleteRecipient(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	recipient := f.findRecipient(request.PathValue("id"))
	if recipient == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Recipient not found")

		return
	}

	recipient.Status = paymentrails.RecipientStatusArchived

	writeOK(writer)
}

func (f *fakeAPI) listRecipientPayments(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	recipientID := request.PathValue("id")
	if f.findRecipient(recipientID) == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Recipient not found")

		return
	}

	var matched []paymentrails.Payment

	for _, batch := range f.batches {
		for _, payment := range f.payments[batch.ID] {
			if payment.Recipient.ID == recipientID {
				matched = append(matched, *payment)
			}
		}
	}

	writePage(writer, request, "payments", matched)
}

func (f *fakeAPI) createAccount(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.RecipientAccountCreateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	recipientID := request.PathValue("id")
	if f.findRecipient(recipientID) == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Recipient not found")

		return
	}

	if req.Currency == "" {
		writeErrors(writer, http.StatusBadRequest, "invalid_field", "currency", "Currency is required")

		return
	}

	account := &paymentrails.RecipientAccount{
		ID:                f.id("A"),
		RecipientID:       recipientID,
		Primary:           len(f.accounts[recipientID]) == 0,
		Type:              req.Type,
		Currency:          req.Currency,
		Country:           req.Country,
		IBAN:              req.IBAN,
		AccountNum:        req.AccountNum,
		BankID:            req.BankID,
		BranchID:          req.BranchID,
		SwiftBIC:          req.SwiftBIC,
		AccountHolderName: req.AccountHolderName,
		EmailAddress:      req.EmailAddress,
	}

	if req.Primary != nil {
		account.Primary = *req.Primary
	}

	f.accounts[recipientID] = append(f.accounts[recipientID], account)

	writeEnvelope(writer, http.StatusOK, "account", account)
}

func (f *fakeAPI) listAccounts(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	accounts := make([]paymentrails.RecipientAccount, 0, len(f.accounts[request.PathValue("id")]))
	for _, account := range f.accounts[request.PathValue("id")] {
		accounts = append(accounts, *account)
	}

	writeJSON(writer, http.StatusOK, map[string]interface{}{"ok": true, "accounts": accounts})
}

func (f *fakeAPI) findAccount(request *http.Request) (int, *paymentrails.RecipientAccount) {
	for i, account := range f.accounts[request.PathValue("id")] {
		if account.ID == request.PathValue("accountID") {
			return i, account
		}
	}

	return -1, nil
}

func (f *fakeAPI) getAccount(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, account := f.findAccount(request)
	if account == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Account not found")

		return
	}

	writeEnvelope(writer, http.StatusOK, "account", account)
}

func (f *fakeAPI) updateAccount(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.RecipientAccountUpdateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	_, account := f.findAccount(request)
	if account == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Account not found")

		return
	}

	if req.Primary != nil {
		account.Primary = *req.Primary
	}

	setString(&account.Currency, req.Currency)
	setString(&account.IBAN, req.IBAN)
	setString(&account.AccountNum, req.AccountNum)
	setString(&account.BankID, req.BankID)
	setString(&account.BranchID, req.BranchID)
	setString(&account.SwiftBIC, req.SwiftBIC)
	setString(&account.AccountHolderName, req.AccountHolderName)
	setString(&account.EmailAddress, req.EmailAddress)

	writeOK(writer)
}

func (f *fakeAPI) deleteAccount(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	index, account := f.findAccount(request)
	if account == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Account not found")

		return
	}

	recipientID := request.PathValue("id")
	f.accounts[recipientID] = append(f.accounts[recipientID][:index], f.accounts[recipientID][index+1:]...)

	writeOK(writer)
}

func (f *fakeAPI) createBatch(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.BatchCreateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	now := paymentrails.NewTimestamp(time.Now().UTC())
	batch := &paymentrails.Batch{
		ID:             f.id("B"),
		SourceCurrency: req.SourceCurrency,
		Currency:       req.SourceCurrency,
		Description:    req.Description,
		Status:         paymentrails.BatchStatusOpen,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	f.batches = append(f.batches, batch)

	for i := range req.Payments {
		f.addPayment(batch, &req.Payments[i])
	}

	writeEnvelope(writer, http.StatusOK, "batch", batch)
}

func (f *fakeAPI) addPayment(batch *paymentrails.Batch, req *paymentrails.PaymentCreateRequest) *paymentrails.Payment {
	payment := &paymentrails.Payment{
		ID:             f.id("P"),
		Batch:          &paymentrails.Reference{ID: batch.ID},
		Recipient:      paymentrails.RecipientRef{ID: req.Recipient.ID},
		Status:         paymentrails.PaymentStatusPending,
		SourceCurrency: batch.SourceCurrency,
		TargetCurrency: req.TargetCurrency,
		ExchangeRate:   decimal.NewFromInt(1),
		Memo:           req.Memo,
		ExternalID:     req.ExternalID,
	}

	if req.SourceAmount != nil {
		payment.SourceAmount = *req.SourceAmount
		payment.TargetAmount = *req.SourceAmount
	}

	if req.TargetAmount != nil {
		payment.TargetAmount = *req.TargetAmount
		payment.SourceAmount = *req.TargetAmount
	}

	if recipient := f.findRecipient(req.Recipient.ID); recipient != nil {
		payment.Recipient.Email = recipient.Email
		payment.Recipient.Name = recipient.Name
	}

	f.payments[batch.ID] = append(f.payments[batch.ID], payment)
	f.recalculate(batch)

	return payment
}

func (f *fakeAPI) recalculate(batch *paymentrails.Batch) {
	total := decimal.Zero
	for _, payment := range f.payments[batch.ID] {
		total = total.Add(payment.SourceAmount)
	}

	batch.Amount = total
	batch.TotalPayments = len(f.payments[batch.ID])
}

func (f *fakeAPI) listBatches(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	batches := make([]paymentrails.Batch, 0, len(f.batches))
	for _, batch := range f.batches {
		batches = append(batches, *batch)
	}

	writePage(writer, request, "batches", batches)
}

func (f *fakeAPI) getBatch(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	batch := f.findBatch(request.PathValue("id"))
	if batch == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")

		return
	}

	writeEnvelope(writer, http.StatusOK, "batch", batch)
}

func (f *fakeAPI) updateBatch(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.BatchUpdateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	batch := f.findBatch(request.PathValue("id"))
	if batch == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")

		return
	}

	setString(&batch.Description, req.Description)
	setString(&batch.SourceCurrency, req.SourceCurrency)

	writeOK(writer)
}

func (f *fakeAPI) deleteBatch(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := request.PathValue("id")
	for i, batch := range f.batches {
		if batch.ID == id {
			f.batches = append(f.batches[:i], f.batches[i+1:]...)
			delete(f.payments, id)
			writeOK(writer)

			return
		}
	}

	writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")
}

func (f *fakeAPI) batchSummary(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	batch := f.findBatch(request.PathValue("id"))
	if batch == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")

		return
	}

	methods := map[string]paymentrails.MethodSummary{}
	for _, payment := range f.payments[batch.ID] {
		method := methods["bank-transfer"]
		method.Count++
		method.Value = method.Value.Add(payment.SourceAmount)
		method.Net = method.Net.Add(payment.SourceAmount)
		methods["bank-transfer"] = method
	}

	writeJSON(writer, http.StatusOK, map[string]interface{}{
		"ok":           true,
		"batchSummary": paymentrails.BatchSummary{ID: batch.ID, Methods: methods},
	})
}

func (f *fakeAPI) generateQuote(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	batch := f.findBatch(request.PathValue("id"))
	if batch == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")

		return
	}

	batch.QuoteExpiredAt = paymentrails.NewTimestamp(time.Now().UTC().Add(time.Hour))

	writeEnvelope(writer, http.StatusOK, "batch", batch)
}

func (f *fakeAPI) startProcessing(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	batch := f.findBatch(request.PathValue("id"))
	if batch == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")

		return
	}

	if batch.TotalPayments == 0 {
		writeErrors(writer, http.StatusBadRequest, "invalid_status", "", "Batch has no payments")

		return
	}

	batch.Status = paymentrails.BatchStatusProcessing
	for _, payment := range f.payments[batch.ID] {
		payment.Status = paymentrails.PaymentStatusProcessing
	}

	writeEnvelope(writer, http.StatusOK, "batch", batch)
}

func (f *fakeAPI) createPayment(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.PaymentCreateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	batch := f.findBatch(request.PathValue("id"))
	if batch == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")

		return
	}

	payment := f.addPayment(batch, &req)

	writeEnvelope(writer, http.StatusOK, "payment", payment)
}

func (f *fakeAPI) listPayments(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	batchID := request.PathValue("id")
	if f.findBatch(batchID) == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Batch not found")

		return
	}

	payments := make([]paymentrails.Payment, 0, len(f.payments[batchID]))
	for _, payment := range f.payments[batchID] {
		payments = append(payments, *payment)
	}

	writePage(writer, request, "payments", payments)
}

func (f *fakeAPI) findPayment(request *http.Request) (int, *paymentrails.Payment) {
	for i, payment := range f.payments[request.PathValue("id")] {
		if payment.ID == request.PathValue("paymentID") {
			return i, payment
		}
	}

	return -1, nil
}

func (f *fakeAPI) getPayment(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, payment := f.findPayment(request)
	if payment == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Payment not found")

		return
	}

	writeEnvelope(writer, http.StatusOK, "payment", payment)
}

func (f *fakeAPI) updatePayment(writer http.ResponseWriter, request *http.Request) {
	var req paymentrails.PaymentUpdateRequest

	if !decodeRequest(writer, request, &req) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	_, payment := f.findPayment(request)
	if payment == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Payment not found")

		return
	}

	if req.SourceAmount != nil {
		payment.SourceAmount = *req.SourceAmount
	}

	if req.TargetAmount != nil {
		payment.TargetAmount = *req.TargetAmount
	}

	setString(&payment.TargetCurrency, req.TargetCurrency)
	setString(&payment.Memo, req.Memo)
	setString(&payment.ExternalID, req.ExternalID)

	f.recalculate(f.findBatch(request.PathValue("id")))

	writeOK(writer)
}

func (f *fakeAPI) deletePayment(writer http.ResponseWriter, request *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	index, payment := f.findPayment(request)
	if payment == nil {
		writeErrors(writer, http.StatusNotFound, "not_found", "", "Payment not found")

		return
	}

	batchID := request.PathValue("id")
	f.payments[batchID] = append(f.payments[batchID][:index], f.payments[batchID][index+1:]...)
	f.recalculate(f.findBatch(batchID))

	writeOK(writer)
}

func writePage[T any](writer http.ResponseWriter, request *http.Request, key string, items []T) {
	page, _ := strconv.Atoi(request.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	pageSize, _ := strconv.Atoi(request.URL.Query().Get("pageSize"))
	if pageSize < 1 {
		pageSize = 10
	}

	pages := (len(items) + pageSize - 1) / pageSize
	if pages == 0 {
		pages = 1
	}

	start := min((page-1)*pageSize, len(items))
	end := min(start+pageSize, len(items))

	writeJSON(writer, http.StatusOK, map[string]interface{}{
		"ok": true,
		key:  append([]T{}, items[start:end]...),
		"meta": paymentrails.Meta{
			Page:    page,
			Pages:   pages,
			Records: len(items),
		},
	})
}

func writeEnvelope(writer http.ResponseWriter, status int, key string, value interface{}) {
	writeJSON(writer, status, map[string]interface{}{"ok": true, key: value})
}

func writeOK(writer http.ResponseWriter) {
	writeJSON(writer, http.StatusOK, map[string]interface{}{"ok": true})
}

func writeErrors(writer http.ResponseWriter, status int, code, field, message string) {
	writeJSON(writer, status, map[string]interface{}{
		"ok": false,
		"errors": []paymentrails.APIError{
			{Code: code, Field: field, Message: message},
		},
	})
}

func writeJSON(writer http.ResponseWriter, status int, value interface{}) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	_ = json.NewEncoder(writer).Encode(value)
}

func decodeRequest(writer http.ResponseWriter, request *http.Request, target interface{}) bool {
	err := json.NewDecoder(request.Body).Decode(target)
	if err != nil {
		writeErrors(writer, http.StatusBadRequest, "invalid_json", "", err.Error())

		return false
	}

	return true
}

func setString(target *string, value *string) {
	if value != nil {
		*target = *value
	}
}

func applyAddress(address *paymentrails.Address, req *paymentrails.AddressRequest) {
	setString(&address.Street1, req.Street1)
	setString(&address.Street2, req.Street2)
	setString(&address.City, req.City)
	setString(&address.PostalCode, req.PostalCode)
	setString(&address.Country, req.Country)
	setString(&address.Region, req.Region)
	setString(&address.Phone, req.Phone)
}
