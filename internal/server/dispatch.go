package server

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/wlansim/wmedium/internal/logging"
	"github.com/wlansim/wmedium/internal/protocol"
)

// dispatch maps a decoded request to a topology operation, builds the
// matching response, and sends it. Not-found and duplicate are valid
// outcomes carried in the response's result code, never Go errors; the
// only error dispatch returns is a failed response write, which is
// fatal for the connection.
func (s *Server) dispatch(w io.Writer, client string, req protocol.Request) error {
	var resp protocol.Response

	switch r := req.(type) {
	case protocol.UpdateLinkRequest:
		resp = s.handleUpdateLink(r)
	case protocol.AddStationRequest:
		resp = s.handleAddStation(r)
	case protocol.DeleteByIDRequest:
		resp = s.handleDeleteByID(r)
	case protocol.DeleteByMACRequest:
		resp = s.handleDeleteByMAC(r)
	default:
		// ReadRequest only produces the kinds above.
		return fmt.Errorf("unhandled request kind %s", req.Tag())
	}

	s.metrics.ObserveRequest(req.Tag().String(), resp.Code().String())
	logging.LogRequest(client, req.Tag().String(), resp.Code().String())

	if err := protocol.WriteResponse(w, resp); err != nil {
		return err
	}
	return nil
}

// handleUpdateLink resolves both endpoints and writes the matrix cell
// for the directed pair, all in one gateway critical section.
func (s *Server) handleUpdateLink(req protocol.UpdateLinkRequest) protocol.Response {
	resp := protocol.UpdateLinkResponse{UpdateLinkRequest: req}

	if err := s.gw.UpdateLink(req.From, req.To, req.SNR); err != nil {
		logging.Warn("Could not perform link update; station(s) not found",
			zap.String("from", req.From.String()),
			zap.String("to", req.To.String()),
			zap.Int32("snr", req.SNR),
		)
		resp.Result = protocol.ResultNotFound
		return resp
	}

	logging.Info("Link updated",
		zap.String("from", req.From.String()),
		zap.String("to", req.To.String()),
		zap.Int32("snr", req.SNR),
	)
	resp.Result = protocol.ResultSuccess
	return resp
}

// handleAddStation registers a new station. On success the response
// carries the freshly assigned id; on duplicate the id stays zero.
func (s *Server) handleAddStation(req protocol.AddStationRequest) protocol.Response {
	resp := protocol.AddStationResponse{AddStationRequest: req}

	id, err := s.gw.Add(req.Addr)
	if err != nil {
		logging.Warn("Station already exists",
			zap.String("addr", req.Addr.String()),
		)
		resp.Result = protocol.ResultDuplicate
		return resp
	}

	logging.Info("Station added",
		zap.String("addr", req.Addr.String()),
		zap.Uint32("id", id),
	)
	resp.CreatedID = id
	resp.Result = protocol.ResultSuccess
	s.metrics.SetStations(s.gw.StationCount())
	return resp
}

func (s *Server) handleDeleteByID(req protocol.DeleteByIDRequest) protocol.Response {
	resp := protocol.DeleteByIDResponse{DeleteByIDRequest: req}

	if err := s.gw.DeleteByID(req.ID); err != nil {
		logging.Warn("Station could not be found",
			zap.Uint32("id", req.ID),
		)
		resp.Result = protocol.ResultNotFound
		return resp
	}

	logging.Info("Station deleted",
		zap.Uint32("id", req.ID),
	)
	resp.Result = protocol.ResultSuccess
	s.metrics.SetStations(s.gw.StationCount())
	return resp
}

func (s *Server) handleDeleteByMAC(req protocol.DeleteByMACRequest) protocol.Response {
	resp := protocol.DeleteByMACResponse{DeleteByMACRequest: req}

	if err := s.gw.DeleteByMAC(req.Addr); err != nil {
		logging.Warn("Station could not be found",
			zap.String("addr", req.Addr.String()),
		)
		resp.Result = protocol.ResultNotFound
		return resp
	}

	logging.Info("Station deleted",
		zap.String("addr", req.Addr.String()),
	)
	resp.Result = protocol.ResultSuccess
	s.metrics.SetStations(s.gw.StationCount())
	return resp
}
