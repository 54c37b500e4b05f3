// Package fintech provides the agent tools backed by the fintech services
// and the onboarding workflow.
package fintech

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/adapters"
	"github.com/effective-security/finmcp/model"
	"github.com/effective-security/finmcp/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "tools/fintech")

// Tool names
const (
	ClientOnboardingToolName        = "ClientOnboarding"
	GetClientToolName               = "GetClient"
	FraudDetectionToolName          = "FraudDetection"
	GeneratePortfolioReportToolName = "GeneratePortfolioReport"
	ProcessLeadToolName             = "ProcessLead"
	ZerodhaChatToolName             = "ZerodhaChat"
)

const (
	clientOnboardingDescription = "Handles client onboarding by processing KYC documents using OCR service."
	getClientDescription        = "Retrieves client details by client ID."
	fraudDetectionDescription   = "Detects fraud for a given customer/client ID"
	portfolioDescription        = "Generates a portfolio report based on the provided message."
	processLeadDescription      = "Processes a lead by sending the contact number to an external service."
	zerodhaChatDescription      = `This tool interacts with Zerodha's trading platform to perform various operations related to user accounts, holdings, positions, and orders.
It allows users to retrieve profile information, holdings, positions, and order history, as well as place and cancel orders.
The tool also supports user authentication via login and request token generation. Following are the available operations:
get-profile:Retrieves comprehensive user profile information from Zerodha account including user ID, username, email, phone, PAN, segments enabled, and account status
get-holdings:Fetches all current stock holdings in the user's portfolio including quantity, average price, current market value, P&L, and other holding details
get-positions:Retrieves all current trading positions (both intraday and overnight) showing quantity, buy/sell prices, realized and unrealized P&L for each position
get-order-history:Fetches detailed order history and status information for a specific order ID, including all order modifications, execution details, and timestamps
place-order:Places a buy or sell order for stocks/instruments on Zerodha. Supports multiple order types (MARKET, LIMIT, SL, SL-M), products (CNC, MIS, NRML), variety (amo, regular, co, bo) and exchanges (NSE, BSE). Default settings: exchange='NSE', product='CNC', order_type='MARKET'
cancel-order:Cancels a pending order using the order ID and variety. Works for open orders that haven't been executed yet. Returns cancellation status and updated order information
login:Authenticates the user and provides url for login
login-using-request-token:When user provides the request token, this tool will generate the session. This will be used to login to the server`
)

// Onboarder runs the onboarding workflow and reads client records
type Onboarder interface {
	Onboard(ctx context.Context, clientID string) (*model.OnboardingOutcome, error)
	GetClient(ctx context.Context, clientID string) (*model.Client, error)
}

// Deps are the services behind the tools
type Deps struct {
	Onboarding Onboarder
	Fraud      adapters.FraudChecker
	// FraudFailMode is the verdict policy when the fraud service fails,
	// empty value is adapters.FailOpen
	FraudFailMode adapters.FailMode
	Portfolio     adapters.PortfolioGenerator
	LeadRelay     adapters.LeadRelay
	Brokerage     adapters.BrokerageChat
}

// ClientIDInput is the argument of the client tools
type ClientIDInput struct {
	ClientID string `json:"clientId" yaml:"clientId" jsonschema:"title=Client ID,description=Identifier of the client, also the contact number of the lead" validate:"required"`
}

// ParseInput accepts the bare client ID
func (in *ClientIDInput) ParseInput(s string) error {
	in.ClientID = s
	return nil
}

// MessageInput is the free text argument of the generation tools
type MessageInput struct {
	Message string `json:"message" yaml:"message" jsonschema:"title=Message,description=Request in natural language" validate:"required"`
}

// ParseInput accepts the bare message
func (in *MessageInput) ParseInput(s string) error {
	in.Message = s
	return nil
}

// ContactInput is the argument of ProcessLead
type ContactInput struct {
	ContactNumber string `json:"contactNumber" yaml:"contactNumber" jsonschema:"title=Contact Number,description=Contact number of the lead" validate:"required"`
}

// ParseInput accepts the bare contact number
func (in *ContactInput) ParseInput(s string) error {
	in.ContactNumber = s
	return nil
}

// New returns the tools for the configured services, a tool is
// omitted when its service is nil.
func New(deps Deps) ([]tools.ITool, error) {
	var list []tools.ITool
	add := func(tool tools.ITool, err error) error {
		if err != nil {
			return err
		}
		list = append(list, tool)
		return nil
	}

	if deps.Onboarding != nil {
		if err := add(NewClientOnboarding(deps.Onboarding)); err != nil {
			return nil, err
		}
		if err := add(NewGetClient(deps.Onboarding)); err != nil {
			return nil, err
		}
	}
	if deps.Fraud != nil {
		if err := add(NewFraudDetection(deps.Fraud, deps.FraudFailMode)); err != nil {
			return nil, err
		}
	}
	if deps.Portfolio != nil {
		if err := add(NewGeneratePortfolioReport(deps.Portfolio)); err != nil {
			return nil, err
		}
	}
	if deps.LeadRelay != nil {
		if err := add(NewProcessLead(deps.LeadRelay)); err != nil {
			return nil, err
		}
	}
	if deps.Brokerage != nil {
		if err := add(NewZerodhaChat(deps.Brokerage)); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Register adds the tools to the registry
func Register(reg *tools.Registry, deps Deps) error {
	list, err := New(deps)
	if err != nil {
		return err
	}
	return reg.Register(list...)
}

// NewClientOnboarding returns the tool running the onboarding workflow
func NewClientOnboarding(svc Onboarder) (tools.ITool, error) {
	return tools.NewFunc(ClientOnboardingToolName, clientOnboardingDescription,
		func(ctx context.Context, in *ClientIDInput) (*model.OnboardingOutcome, error) {
			return svc.Onboard(ctx, in.ClientID)
		})
}

// NewGetClient returns the tool reading a client record
func NewGetClient(svc Onboarder) (tools.ITool, error) {
	return tools.NewFunc(GetClientToolName, getClientDescription,
		func(ctx context.Context, in *ClientIDInput) (*model.Client, error) {
			logger.ContextKV(ctx, xlog.DEBUG, "status", "get_client", "client_id", in.ClientID)
			return svc.GetClient(ctx, in.ClientID)
		})
}

// NewFraudDetection returns the fraud tool, a failed check
// is reported with the verdict of mode.
func NewFraudDetection(checker adapters.FraudChecker, mode adapters.FailMode) (tools.ITool, error) {
	mode, err := adapters.ParseFailMode(string(mode))
	if err != nil {
		return nil, err
	}
	return tools.NewFunc(FraudDetectionToolName, fraudDetectionDescription,
		func(ctx context.Context, in *ClientIDInput) (*model.FraudResult, error) {
			res, err := checker.Check(ctx, in.ClientID)
			return adapters.Resolve(ctx, res, err, adapters.FraudOnFailure(mode, in.ClientID)), nil
		})
}

// NewGeneratePortfolioReport returns the portfolio tool,
// a failed generation returns the empty report.
func NewGeneratePortfolioReport(gen adapters.PortfolioGenerator) (tools.ITool, error) {
	return tools.NewFunc(GeneratePortfolioReportToolName, portfolioDescription,
		func(ctx context.Context, in *MessageInput) (*model.PortfolioReport, error) {
			res, err := gen.Generate(ctx, in.Message)
			return adapters.Resolve(ctx, res, err, adapters.PortfolioOnFailure()), nil
		})
}

// NewProcessLead returns the lead relay tool, a failed relay
// returns the fixed failure text.
func NewProcessLead(relay adapters.LeadRelay) (tools.ITool, error) {
	return tools.NewFunc(ProcessLeadToolName, processLeadDescription,
		func(ctx context.Context, in *ContactInput) (*string, error) {
			text, err := relay.Relay(ctx, in.ContactNumber)
			text = adapters.Resolve(ctx, text, err, adapters.LeadRelayOnFailure())
			return &text, nil
		})
}

// NewZerodhaChat returns the brokerage tool, a failed request
// returns the {"error": ...} document.
func NewZerodhaChat(chat adapters.BrokerageChat) (tools.ITool, error) {
	return tools.NewFunc(ZerodhaChatToolName, zerodhaChatDescription,
		func(ctx context.Context, in *MessageInput) (*json.RawMessage, error) {
			res, err := chat.Chat(ctx, in.Message)
			if err == nil && len(res) == 0 {
				err = errors.New("empty brokerage response")
			}
			res = adapters.Resolve(ctx, res, err, adapters.BrokerageOnFailure())
			return &res, nil
		})
}
