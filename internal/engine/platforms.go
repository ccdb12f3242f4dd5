package engine

import (
	"github.com/creatorpulse/earnings-cli/internal/rates"
	"github.com/rotisserie/eris"
)

// platformChannels returns the ordered channel spec list for a platform.
// Order matters only for readability; "other" is not listed because it is
// derived from the primary sum after all channels are finalized.
func platformChannels(p rates.Platform) ([]channelSpec, error) {
	switch p {
	case rates.TikTok:
		return []channelSpec{
			{ChannelCreatorFund, creatorFundAmount},
			{ChannelLiveGifts, liveGiftsAmount},
			{ChannelBrandPartnerships, brandPartnershipsAmount},
			{ChannelAffiliate, affiliateAmount},
			{ChannelMerchandise, merchandiseAmount},
		}, nil
	case rates.Instagram:
		return []channelSpec{
			{ChannelCreatorFund, creatorFundAmount}, // reels bonus program
			{ChannelLiveGifts, liveGiftsAmount},     // live badges
			{ChannelBrandPartnerships, brandPartnershipsAmount},
			{ChannelAffiliate, affiliateAmount},
			{ChannelMerchandise, merchandiseAmount},
		}, nil
	case rates.YouTube:
		return []channelSpec{
			{ChannelAdRevenue, creatorFundAmount}, // CPM × views × revenue share
			{ChannelMemberships, membershipsAmount},
			{ChannelSuperChat, superChatAmount},
			{ChannelBrandPartnerships, brandPartnershipsAmount},
			{ChannelAffiliate, affiliateAmount},
			{ChannelMerchandise, merchandiseAmount},
		}, nil
	default:
		return nil, eris.Wrapf(rates.ErrUnsupportedPlatform, "platform %q", p)
	}
}
