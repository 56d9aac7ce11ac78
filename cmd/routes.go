package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Service types
	mux.Get("/service_types", authMiddleware.ThenFunc(app.serviceTypeHandler.GetServiceTypes))

	// Listings
	mux.Post("/listings", authMiddleware.ThenFunc(app.listingHandler.CreateListing))
	mux.Get("/listings/get", authMiddleware.ThenFunc(app.listingHandler.GetListings))
	mux.Get("/listings/mine", authMiddleware.ThenFunc(app.listingHandler.GetMyListings))
	mux.Get("/listings/:id", authMiddleware.ThenFunc(app.listingHandler.GetListingByID))
	mux.Put("/listings/:id", authMiddleware.ThenFunc(app.listingHandler.UpdateListing))
	mux.Del("/listings/:id", authMiddleware.ThenFunc(app.listingHandler.DeleteListing))
	mux.Post("/listings/:id/photos", authMiddleware.ThenFunc(app.listingHandler.UploadListingPhoto))

	// Requests
	mux.Post("/requests", authMiddleware.ThenFunc(app.requestHandler.CreateRequest))
	mux.Get("/requests/get", authMiddleware.ThenFunc(app.requestHandler.GetRequests))
	mux.Get("/requests/:id", authMiddleware.ThenFunc(app.requestHandler.GetRequestByID))
	mux.Put("/requests/:id/status", authMiddleware.ThenFunc(app.requestHandler.UpdateRequestStatus))
	mux.Get("/requests/:id/transitions", authMiddleware.ThenFunc(app.requestHandler.GetRequestTransitions))

	// Selections and view mode
	mux.Get("/selection", authMiddleware.ThenFunc(app.selectionHandler.GetSelection))
	mux.Put("/selection/listing/:id", authMiddleware.ThenFunc(app.selectionHandler.SelectListing))
	mux.Del("/selection/listing", authMiddleware.ThenFunc(app.selectionHandler.ClearListingSelection))
	mux.Put("/selection/request/:id", authMiddleware.ThenFunc(app.selectionHandler.SelectRequest))
	mux.Del("/selection/request", authMiddleware.ThenFunc(app.selectionHandler.ClearRequestSelection))
	mux.Put("/selection/view_mode", authMiddleware.ThenFunc(app.selectionHandler.SetViewMode))

	// Change feed
	mux.Get("/ws", standardMiddleware.ThenFunc(app.ChangeFeedHandler))

	return mux
}
