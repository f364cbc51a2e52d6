package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/gpxmatch/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type matchAPI struct {
	matchService MatchService
	log          *zap.Logger
}

func New(matchService MatchService, log *zap.Logger) *matchAPI {
	return &matchAPI{
		matchService: matchService,
		log:          log,
	}
}

func (api *matchAPI) Routes(group *helper.RouteGroup) {
	group.GET("/tracks", api.tracks)
	group.GET("/matches", api.matches)
}

func (api *matchAPI) tracks(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	ids, err := api.matchService.ListTracks()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": tracksResponse{Tracks: ids}}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}

func (api *matchAPI) matches(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request matchesRequest
		err     error
	)

	query := r.URL.Query()

	request.TrackA = query.Get("track_a")
	request.TrackB = query.Get("track_b")
	if raw := query.Get("coords"); raw != "" {
		request.Coords, err = strconv.ParseBool(raw)
		if err != nil {
			api.BadRequestResponse(w, r, errors.New("coords must be a valid bool"))
			return
		}
	}

	validate := validator.New()
	if err := validate.Struct(request); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		vvString := []string{}
		for _, v := range vv {
			vvString = append(vvString, v.Error())
		}
		api.BadRequestResponse(w, r, fmt.Errorf("validation error: %v", vvString))
		return
	}

	matches, err := api.matchService.Matches(request.TrackA, request.TrackB, request.Coords)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	headers := make(http.Header)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewMatchesResponse(matches)}, headers); err != nil {
		api.ServerErrorResponse(w, r, err)
		return
	}
}
