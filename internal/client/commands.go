package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/rent-pe-easy/models"
)

func (a *App) register(ctx context.Context, args []string) error {
	var req models.RegisterRequest

	fs := a.newFlagSet("register")
	fs.StringVar(&req.Username, "username", "", "account username")
	fs.StringVar(&req.Email, "email", "", "e-mail address")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.FullName, "full-name", "", "full name")
	fs.StringVar(&req.PhoneNumber, "phone", "", "phone number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.adapter.Register(ctx, req)
	if err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if err = a.saveSession(auth); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Registered and logged in as %s\n", auth.User.Username)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	var req models.LoginRequest

	fs := a.newFlagSet("login")
	fs.StringVar(&req.Username, "username", "", "account username")
	fs.StringVar(&req.Password, "password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	auth, err := a.adapter.Login(ctx, req)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if err = a.saveSession(auth); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Logged in as %s (%s)\n", auth.User.Username, auth.User.Role)
	return nil
}

func (a *App) refresh(ctx context.Context, _ []string) error {
	session, err := a.sessions.Load()
	if err != nil {
		return err
	}

	auth, err := a.refreshSession(ctx, session)
	if err != nil {
		return fmt.Errorf("refresh: %w", err)
	}

	fmt.Fprintf(a.out, "Session refreshed for %s\n", auth.User.Username)
	return nil
}

// logout always forgets the local session, even when the server call fails.
func (a *App) logout(ctx context.Context, _ []string) error {
	err := a.withSession(ctx, a.adapter.Logout)
	if errors.Is(err, ErrNoSession) {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}

	if clearErr := a.sessions.Clear(); clearErr != nil {
		return errors.Join(err, clearErr)
	}
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) search(ctx context.Context, args []string) error {
	var params models.SearchParams

	fs := a.newFlagSet("search")
	fs.StringVar(&params.City, "city", "", "city substring, case-insensitive")
	fs.StringVar(&params.Type, "type", "", "property type, e.g. APARTMENT")
	fs.StringVar(&params.MinPrice, "min-price", "", "inclusive lower price bound")
	fs.StringVar(&params.MaxPrice, "max-price", "", "inclusive upper price bound")
	if err := fs.Parse(args); err != nil {
		return err
	}

	properties, err := a.adapter.SearchProperties(ctx, params)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	return renderProperties(a.out, properties)
}

func (a *App) featured(ctx context.Context, _ []string) error {
	properties, err := a.adapter.FeaturedProperties(ctx)
	if err != nil {
		return fmt.Errorf("featured: %w", err)
	}

	return renderProperties(a.out, properties)
}

func (a *App) get(ctx context.Context, args []string) error {
	id, err := propertyIDArg("get", args)
	if err != nil {
		return err
	}

	property, err := a.adapter.GetProperty(ctx, id)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}

	return renderProperty(a.out, property)
}

func (a *App) favorites(ctx context.Context, _ []string) error {
	var properties []models.Property

	err := a.withSession(ctx, func(ctx context.Context) error {
		var err error
		properties, err = a.adapter.Favorites(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("favorites: %w", err)
	}

	return renderProperties(a.out, properties)
}

func (a *App) favoriteAdd(ctx context.Context, args []string) error {
	id, err := propertyIDArg("favorite-add", args)
	if err != nil {
		return err
	}

	err = a.withSession(ctx, func(ctx context.Context) error {
		return a.adapter.AddFavorite(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("favorite-add: %w", err)
	}

	fmt.Fprintf(a.out, "Added %s to favorites\n", id)
	return nil
}

func (a *App) favoriteRemove(ctx context.Context, args []string) error {
	id, err := propertyIDArg("favorite-remove", args)
	if err != nil {
		return err
	}

	err = a.withSession(ctx, func(ctx context.Context) error {
		return a.adapter.RemoveFavorite(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("favorite-remove: %w", err)
	}

	fmt.Fprintf(a.out, "Removed %s from favorites\n", id)
	return nil
}

// version prints the client build info and, when reachable, the API version.
func (a *App) version(ctx context.Context, _ []string) error {
	for _, line := range a.buildInfo.Lines() {
		fmt.Fprintln(a.out, line)
	}

	serverVersion, err := a.adapter.Version(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("error fetching server version")
		serverVersion = "unavailable"
	}
	fmt.Fprintf(a.out, "Server version: %s\n", serverVersion)

	return nil
}
